// Package detector decides whether a list document must be republished.
//
// The decision runs in two steps. ShouldPublish looks only at modification
// times, which both storage systems expose cheaply. When that is not
// conclusive, the caller downloads the source, hashes its canonical form and
// asks CompareHashes for the final answer.
package detector

import "time"

type Decision int

const (
	Unknown Decision = iota
	Skip
	FetchAndCompare
	Publish
)

func (d Decision) String() string {
	switch d {
	case Skip:
		return "skip"
	case FetchAndCompare:
		return "fetch-and-compare"
	case Publish:
		return "publish"
	default:
		return "unknown"
	}
}

// ShouldPublish is the timestamp fast path. A zero time means the metadata is
// absent. It never returns Publish: even a forced run compares hashes first.
func ShouldPublish(sourceModified, destinationModified time.Time, force bool) Decision {
	switch {
	case force:
		return FetchAndCompare
	case destinationModified.IsZero():
		return FetchAndCompare
	case sourceModified.IsZero():
		return FetchAndCompare
	case !sourceModified.After(destinationModified):
		return Skip
	default:
		return FetchAndCompare
	}
}

// CompareHashes compares the canonical source hash with the destination
// entity tag. An empty destination hash means there is no prior artifact.
func CompareHashes(sourceHash, destinationHash string, force bool) Decision {
	if !force && destinationHash != "" && sourceHash == destinationHash {
		return Skip
	}
	return Publish
}
