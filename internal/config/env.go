package config

import (
	"os"
	"strings"

	"github.com/samber/lo"
)

// UnsetEnvVars lists the variables referenced by raw ($VAR or ${VAR}) that
// are not present in the environment, in order of first use.
func UnsetEnvVars(raw string) []string {
	var missing []string
	os.Expand(raw, func(name string) string {
		if _, ok := os.LookupEnv(name); !ok && name != "" {
			missing = append(missing, name)
		}
		return ""
	})
	return lo.Uniq(missing)
}

// RPCURLEnvVar is the variable consulted for a network missing from mintmuse.toml:
// sepolia -> SEPOLIA_RPC_URL, base-sepolia -> BASE_SEPOLIA_RPC_URL
func RPCURLEnvVar(networkName string) string {
	name := strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToUpper(networkName))
	return name + "_RPC_URL"
}
