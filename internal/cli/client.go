package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aip-labs/aip/internal/config"
	"github.com/aip-labs/aip/pkg/aip"
)

// newClient builds a registry client from the config file and
// environment, with the --registry and --api-key flags taking
// precedence.
func newClient() *aip.Client {
	config.Load()
	settings := config.Current()

	registryURL := settings.RegistryURL
	if registryFlag != "" {
		registryURL = registryFlag
	}
	apiKey := settings.APIKey
	if apiKeyFlag != "" {
		apiKey = apiKeyFlag
	}

	return aip.New(registryURL,
		aip.WithAPIKey(apiKey),
		aip.WithTimeout(time.Duration(settings.TimeoutSeconds)*time.Second),
		aip.WithMaxRetries(settings.MaxRetries),
		aip.WithBackoffFactor(settings.BackoffFactor),
	)
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything other than "y" or "yes" declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
