package cli

import (
	"log/slog"

	"github.com/shaiso/orchestra-cli/internal/config"
	"github.com/shaiso/orchestra-cli/internal/gitrepo"
)

// Deps — зависимости команд.
//
// Создаются лениво после парсинга PersistentFlags: флаг --base-url
// должен успеть примениться.
type Deps struct {
	Config config.Config
	Client *Client
	Out    *Output
	Git    *gitrepo.Inspector
	Prompt Prompter
	Logger *slog.Logger

	// WorkDir — рабочая директория для run (поиск репозитория).
	WorkDir string
}
