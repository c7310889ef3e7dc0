package research

import (
	"testing"

	"github.com/lakefield/deepresearch/pkg/provider"

	"github.com/stretchr/testify/require"
)

func handlesOf(entries ...provider.Handle) map[string]provider.Handle {
	handles := map[string]provider.Handle{}

	for _, h := range entries {
		handles[h.Name] = h
	}

	return handles
}

func TestSelectByPriority(t *testing.T) {
	handles := handlesOf(
		provider.Handle{Name: ProviderOpenAI, Priority: 10, Completer: &mockCompleter{}},
		provider.Handle{Name: ProviderAnthropic, Priority: 5, Completer: &mockCompleter{}},
	)

	// map iteration order must not influence the outcome
	for range 20 {
		handle, err := selectProvider(handles, "")
		require.NoError(t, err)
		require.Equal(t, ProviderAnthropic, handle.Name)
	}
}

func TestSelectTieBreak(t *testing.T) {
	handles := handlesOf(
		provider.Handle{Name: ProviderOpenAI, Priority: 100, Completer: &mockCompleter{}},
		provider.Handle{Name: ProviderAnthropic, Priority: 100, Completer: &mockCompleter{}},
	)

	handle, err := selectProvider(handles, "")
	require.NoError(t, err)
	require.Equal(t, ProviderAnthropic, handle.Name, "ties break lexically")
}

func TestSelectIgnoresUnsupported(t *testing.T) {
	handles := handlesOf(
		provider.Handle{Name: "google", Priority: 1, Completer: &mockCompleter{}},
		provider.Handle{Name: ProviderOpenAI, Priority: 100, Completer: &mockCompleter{}},
	)

	handle, err := selectProvider(handles, "")
	require.NoError(t, err)
	require.Equal(t, ProviderOpenAI, handle.Name)
}

func TestSelectNoneRegistered(t *testing.T) {
	_, err := selectProvider(map[string]provider.Handle{}, "")

	var noProvider *NoProviderError
	require.ErrorAs(t, err, &noProvider)
	require.Empty(t, noProvider.Registered)
	require.Contains(t, err.Error(), "none")
}

func TestSelectEnumeratesRegistered(t *testing.T) {
	handles := handlesOf(
		provider.Handle{Name: "google", Priority: 1, Completer: &mockCompleter{}},
	)

	_, err := selectProvider(handles, "")

	var noProvider *NoProviderError
	require.ErrorAs(t, err, &noProvider)
	require.Equal(t, []string{"google"}, noProvider.Registered)
	require.Contains(t, err.Error(), "google")
}

func TestSelectPreference(t *testing.T) {
	handles := handlesOf(
		provider.Handle{Name: ProviderOpenAI, Priority: 1, Completer: &mockCompleter{}},
		provider.Handle{Name: ProviderAnthropic, Priority: 50, Completer: &mockCompleter{}},
	)

	handle, err := selectProvider(handles, ProviderAnthropic)
	require.NoError(t, err)
	require.Equal(t, ProviderAnthropic, handle.Name, "explicit preference overrides priority")

	handle, err = selectProvider(handles, ProviderAuto)
	require.NoError(t, err)
	require.Equal(t, ProviderOpenAI, handle.Name)
}

func TestSelectPreferenceNotRegistered(t *testing.T) {
	handles := handlesOf(
		provider.Handle{Name: ProviderOpenAI, Priority: 1, Completer: &mockCompleter{}},
	)

	_, err := selectProvider(handles, ProviderAnthropic)

	var noProvider *NoProviderError
	require.ErrorAs(t, err, &noProvider)
	require.Contains(t, err.Error(), ProviderOpenAI)
}
