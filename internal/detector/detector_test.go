package detector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestShouldPublish_SourceNotNewerSkips(t *testing.T) {
	for _, delta := range []time.Duration{0, time.Second, time.Hour, 24 * time.Hour * 365} {
		got := ShouldPublish(base.Add(-delta), base, false)
		assert.Equal(t, Skip, got, "delta=%s", delta)
	}
}

func TestShouldPublish_SourceNewerFetches(t *testing.T) {
	got := ShouldPublish(base.Add(time.Nanosecond), base, false)
	assert.Equal(t, FetchAndCompare, got)
}

func TestShouldPublish_ForceOverridesSkip(t *testing.T) {
	got := ShouldPublish(base.Add(-time.Hour), base, true)
	assert.Equal(t, FetchAndCompare, got)
}

func TestShouldPublish_NoDestination(t *testing.T) {
	for _, force := range []bool{false, true} {
		assert.Equal(t, FetchAndCompare, ShouldPublish(base, time.Time{}, force))
	}
}

func TestShouldPublish_NoSourceTime(t *testing.T) {
	assert.Equal(t, FetchAndCompare, ShouldPublish(time.Time{}, base, false))
}

func TestShouldPublish_NeverPublishesDirectly(t *testing.T) {
	times := []time.Time{{}, base.Add(-time.Hour), base, base.Add(time.Hour)}
	for _, src := range times {
		for _, dst := range times {
			for _, force := range []bool{false, true} {
				assert.NotEqual(t, Publish, ShouldPublish(src, dst, force))
			}
		}
	}
}

func TestCompareHashes(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		dst   string
		force bool
		want  Decision
	}{
		{"identical content", "abc", "abc", false, Skip},
		{"identical content forced", "abc", "abc", true, Publish},
		{"changed content", "abc", "def", false, Publish},
		{"first publish", "abc", "", false, Publish},
		{"both empty", "", "", false, Publish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareHashes(tt.src, tt.dst, tt.force))
		})
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "skip", Skip.String())
	assert.Equal(t, "fetch-and-compare", FetchAndCompare.String())
	assert.Equal(t, "publish", Publish.String())
}
