package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotr/pkg/config"
	"github.com/arthur-debert/dotr/pkg/vars"
)

// fakeAsker answers from a fixed map and records what was asked.
type fakeAsker struct {
	answers map[string]string
	asked   []string
}

func (f *fakeAsker) Ask(name, message string) (string, error) {
	f.asked = append(f.asked, name)
	return f.answers[name], nil
}

func newTestContext(t *testing.T, cfg *config.Config) *vars.Context {
	t.Helper()
	ctx, err := vars.New(t.TempDir(), cfg)
	require.NoError(t, err)
	return ctx
}

func TestGatherAsksMissingOnly(t *testing.T) {
	cfg := config.New()
	cfg.Variables["PRESENT"] = "already-set"
	cfg.Prompts = map[string]string{
		"PRESENT":    "Should not be asked",
		"USER_EMAIL": "Enter your email",
	}

	ctx := newTestContext(t, cfg)
	asker := &fakeAsker{answers: map[string]string{"USER_EMAIL": "me@example.com"}}

	require.NoError(t, Gather(asker, ctx, cfg, nil))
	assert.Equal(t, []string{"USER_EMAIL"}, asker.asked)

	v, ok := ctx.Lookup("USER_EMAIL")
	require.True(t, ok)
	assert.Equal(t, "me@example.com", v)
}

func TestGatherSkipsExistingUserVariable(t *testing.T) {
	cfg := config.New()
	cfg.Prompts = map[string]string{"USER_EMAIL": "Enter your email"}

	ctx := newTestContext(t, cfg)
	ctx.SetUserVar("USER_EMAIL", "existing@example.com")

	asker := &fakeAsker{}
	require.NoError(t, Gather(asker, ctx, cfg, nil))
	assert.Empty(t, asker.asked, "a variable answered on a previous run is not asked again")
}

func TestGatherSkipsEnvironmentVariable(t *testing.T) {
	t.Setenv("DOTR_TEST_PROMPTED", "from-env")

	cfg := config.New()
	cfg.Prompts = map[string]string{"DOTR_TEST_PROMPTED": "Value?"}

	ctx := newTestContext(t, cfg)
	asker := &fakeAsker{}

	require.NoError(t, Gather(asker, ctx, cfg, nil))
	assert.Empty(t, asker.asked)
}

func TestGatherPackageAndProfilePrompts(t *testing.T) {
	cfg := config.New()
	cfg.SetProfile(config.Profile{
		Name:    "work",
		Prompts: map[string]string{"WORK_TOKEN": "Work token?"},
	})
	pkg := config.Package{
		Name:      "f_gitconfig",
		Variables: map[string]interface{}{"COVERED": "yes"},
		Prompts: map[string]string{
			"GIT_EMAIL": "Git email?",
			"COVERED":   "Should not be asked",
		},
	}

	ctx := newTestContext(t, cfg)
	require.NoError(t, ctx.ApplyProfile(cfg, "work"))

	asker := &fakeAsker{answers: map[string]string{
		"WORK_TOKEN": "tok",
		"GIT_EMAIL":  "work@example.com",
	}}

	require.NoError(t, Gather(asker, ctx, cfg, []config.Package{pkg}))
	assert.Equal(t, []string{"GIT_EMAIL", "WORK_TOKEN"}, asker.asked,
		"prompts are asked in sorted order, package variables cover their own prompts")
}

func TestGatherPersistsAnswers(t *testing.T) {
	cfg := config.New()
	cfg.Prompts = map[string]string{"API_KEY": "API key?"}

	ctx := newTestContext(t, cfg)
	asker := &fakeAsker{answers: map[string]string{"API_KEY": "secret"}}

	require.NoError(t, Gather(asker, ctx, cfg, nil))

	saved, err := config.LoadUserVars(ctx.WorkingDir)
	require.NoError(t, err)
	assert.Equal(t, "secret", saved["API_KEY"])
}

func TestGatherNothingToAsk(t *testing.T) {
	cfg := config.New()

	ctx := newTestContext(t, cfg)
	asker := &fakeAsker{}

	require.NoError(t, Gather(asker, ctx, cfg, nil))
	assert.Empty(t, asker.asked)

	saved, err := config.LoadUserVars(ctx.WorkingDir)
	require.NoError(t, err)
	assert.Empty(t, saved, "no answers means the override file is left alone")
}
