package main

import (
	"github.com/MrSnakeDoc/listsite/internal/handler"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	lambda.Start(handler.New(nil, nil).Handle)
}
