package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// withVersion swaps the build version for the duration of a test.
func withVersion(t *testing.T, v string) {
	t.Helper()
	orig := Version
	Version = v
	resetParsedVersion()
	t.Cleanup(func() {
		Version = orig
		resetParsedVersion()
	})
}

func TestParsed(t *testing.T) {
	withVersion(t, "1.2.3")
	v := Parsed()
	assert.NotNil(t, v)
	assert.Equal(t, uint64(1), v.Major())
	assert.Equal(t, uint64(2), v.Minor())
	assert.Equal(t, uint64(3), v.Patch())
}

func TestParsedDevBuild(t *testing.T) {
	withVersion(t, "dev")
	assert.Nil(t, Parsed())
	assert.True(t, IsDevBuild())
}

func TestIsPrerelease(t *testing.T) {
	withVersion(t, "1.2.3-beta.1")
	assert.True(t, IsPrerelease())

	withVersion(t, "1.2.3")
	assert.False(t, IsPrerelease())

	withVersion(t, "dev")
	assert.False(t, IsPrerelease())
}

func TestCompare(t *testing.T) {
	withVersion(t, "1.2.3")
	assert.Equal(t, -1, Compare("1.3.0"))
	assert.Equal(t, 0, Compare("1.2.3"))
	assert.Equal(t, 1, Compare("1.2.2"))

	// Unparseable versions compare as equal
	assert.Equal(t, 0, Compare("not-a-version"))
	withVersion(t, "dev")
	assert.Equal(t, 0, Compare("1.0.0"))
}

func TestIsNewerThan(t *testing.T) {
	withVersion(t, "2.0.0")
	assert.True(t, IsNewerThan("1.9.9"))
	assert.False(t, IsNewerThan("2.0.0"))
	assert.False(t, IsNewerThan("2.0.1"))
}
