package research

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/lakefield/deepresearch/pkg/provider"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderAuto      = "auto"
)

var supportedProviders = []string{ProviderAnthropic, ProviderOpenAI}

// NoProviderError reports that no usable provider is registered. The
// message enumerates what is registered so misconfiguration shows up
// in the result.
type NoProviderError struct {
	Registered []string
}

func (e *NoProviderError) Error() string {
	registered := "none"

	if len(e.Registered) > 0 {
		registered = strings.Join(e.Registered, ", ")
	}

	return "deep research requires an openai or anthropic provider. currently registered: " + registered
}

// selectProvider picks exactly one provider from the snapshot. An
// explicit preference wins when it names a registered supported
// provider; otherwise candidates are ordered by ascending priority,
// ties broken by name.
func selectProvider(handles map[string]provider.Handle, preference string) (provider.Handle, error) {
	registered := make([]string, 0, len(handles))

	for name := range handles {
		registered = append(registered, name)
	}

	sort.Strings(registered)

	if preference != "" && preference != ProviderAuto {
		if slices.Contains(supportedProviders, preference) {
			if handle, ok := handles[preference]; ok {
				return handle, nil
			}
		}

		return provider.Handle{}, &NoProviderError{Registered: registered}
	}

	var candidates []provider.Handle

	for _, name := range supportedProviders {
		if handle, ok := handles[name]; ok {
			candidates = append(candidates, handle)
		}
	}

	if len(candidates) == 0 {
		return provider.Handle{}, &NoProviderError{Registered: registered}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority < candidates[j].Priority
		}

		return candidates[i].Name < candidates[j].Name
	})

	priorities := make(map[string]int, len(candidates))

	for _, candidate := range candidates {
		priorities[candidate.Name] = candidate.Priority
	}

	slog.Debug("selected research provider",
		"priorities", priorities,
		"selected", candidates[0].Name,
	)

	return candidates[0], nil
}
