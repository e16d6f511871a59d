package errs

import "fmt"

type Code string

const (
	MissingSetting      Code = "MISSING_SETTING"
	MissingEnv          Code = "MISSING_ENV"
	InvalidSetting      Code = "INVALID_SETTING"
	UnknownFlow         Code = "UNKNOWN_FLOW"
	SourceNotFound      Code = "SOURCE_NOT_FOUND"
	SourceIsDestination Code = "SOURCE_IS_DESTINATION"
	ListNotAnObject     Code = "LIST_NOT_AN_OBJECT"
	SecretUnavailable   Code = "SECRET_UNAVAILABLE"
)

var messages = map[Code]string{
	MissingSetting: `%[1]s or $%[2]s is required`,

	MissingEnv: `$%[1]s is required`,

	InvalidSetting: `Invalid value %[3]q for %[1]s ($%[2]s)

Allowed values:
  %[4]s`,

	UnknownFlow: `Unknown flow %[1]q in $LISTSITE_FLOW

Usage:
  LISTSITE_FLOW=update     # mirror the list file into the generator bucket
  LISTSITE_FLOW=generate   # render index.html and publish it`,

	SourceNotFound: `Source list %[1]q does not exist

Reason:
  the source of truth is read-only for listsite, create the file there first.`,

	SourceIsDestination: `Source list %[1]q is also the destination

Usage:
  keep the source outside the local storage directory:
      listsite update --source local --dropbox-path ~/lists/foolist.json --local-dir ./site`,

	ListNotAnObject: `List document %[1]q must be a JSON object with "title" and "lists"`,

	SecretUnavailable: `Unable to read the Dropbox access key from secret %[1]q

Usage:
  - pass the key directly:
      listsite update --dropbox-access-key <key>
  - or make sure the secret exists and the role can read it`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
