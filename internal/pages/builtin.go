package pages

import "github.com/thoreinstein/devdeck/internal/host"

// Built-in page ids.
const (
	IDNodeStatus     = "node_status"
	IDFnmManager     = "fnm_manager"
	IDClaudeModel    = "claude_model"
	IDClaudeEnv      = "claude_env"
	IDServices       = "mcp_services"
	IDServicesImport = "services_import"
	IDAbout          = "about"
)

// Builtin returns the pages that ship with devdeck, in catalog order.
func Builtin() []PageMeta {
	native := func() []host.Host { return []host.Host{host.Desktop, host.Extension} }

	return []PageMeta{
		{
			ID:                       IDNodeStatus,
			Name:                     "Node Toolchain",
			Description:              "Installed versions of fnm, node and npm",
			Kind:                     KindCard,
			Platforms:                native(),
			Category:                 "runtime",
			RequiresCommandExecution: true,
			Tags:                     []string{"node", "fnm", "npm", "status"},
			Order:                    5,
			Icon:                     "pulse",
		},
		{
			ID:                       IDFnmManager,
			Name:                     "Node Versions",
			Description:              "Install, switch and remove Node.js versions with fnm",
			Kind:                     KindPage,
			Platforms:                native(),
			Category:                 "runtime",
			RequiresCommandExecution: true,
			Tags:                     []string{"node", "fnm", "runtime"},
			Order:                    10,
			Icon:                     "versions",
		},
		{
			ID:          IDClaudeModel,
			Name:        "Model Provider",
			Description: "Choose the API provider and model the assistant talks to",
			Kind:        KindSettings,
			Platforms:   host.All(),
			Category:    "assistant",
			Tags:        []string{"claude", "provider", "model"},
			Order:       20,
			Icon:        "sparkle",
		},
		{
			ID:          IDClaudeEnv,
			Name:        "Assistant Environment",
			Description: "Environment variables and API retry settings",
			Kind:        KindSettings,
			Platforms:   host.All(),
			Category:    "assistant",
			Tags:        []string{"claude", "env", "credentials"},
			Order:       30,
			Icon:        "key",
		},
		{
			ID:          IDServices,
			Name:        "Services",
			Description: "Registered service endpoints and the commands that start them",
			Kind:        KindPage,
			Platforms:   host.All(),
			Category:    "services",
			Tags:        []string{"mcp", "services"},
			Order:       40,
			Icon:        "plug",
		},
		{
			ID:                       IDServicesImport,
			Name:                     "Import Services",
			Description:              "Merge service definitions from a registry file on disk",
			Kind:                     KindModal,
			Platforms:                native(),
			Category:                 "services",
			RequiresFileSystemAccess: true,
			Tags:                     []string{"mcp", "services", "import"},
			Order:                    45,
			Icon:                     "download",
		},
		{
			ID:          IDAbout,
			Name:        "About",
			Description: "Version and host information",
			Kind:        KindPage,
			Platforms:   host.All(),
			Order:       100,
			Icon:        "info",
		},
	}
}
