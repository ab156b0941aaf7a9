package guide

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotr/pkg/errors"
)

func TestTopicsListsEmbeddedGuides(t *testing.T) {
	topics := Topics()

	assert.Contains(t, topics, "getting-started")
	assert.Contains(t, topics, "templates")
	assert.Contains(t, topics, "variables")
	assert.Contains(t, topics, "profiles")
	assert.True(t, sort.StringsAreSorted(topics))
}

func TestContentReturnsMarkdown(t *testing.T) {
	content, err := Content("templates")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(content, "# Templates"))
}

func TestContentUnknownTopic(t *testing.T) {
	_, err := Content("ghost")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRenderPlain(t *testing.T) {
	rendered, err := Render("profiles", false)
	require.NoError(t, err)

	assert.Contains(t, rendered, "Profiles")
	assert.Contains(t, rendered, "DOTR_PROFILE")
}
