// Package gitrepo извлекает из локального git-репозитория информацию,
// нужную для импорта и запуска pipeline.
//
// # Обзор
//
// Все запросы выполняются через внешний процесс git. Любая ошибка git
// (процесс не запустился, ненулевой код выхода) трактуется как
// "информация недоступна" и никогда не роняет CLI.
//
// # Ключевые компоненты
//
// ## Runner
//
// Узкий интерфейс запуска git: Run(ctx, dir, args...) → Result.
// ExecRunner запускает настоящий бинарник, тесты подставляют фейк.
//
// ## Inspector
//
// Запросы к репозиторию поверх Runner:
//   - RepoRoot — корень рабочего дерева (rev-parse --show-toplevel)
//   - RemoteURL / RepositorySlug — URL origin и slug "owner/repo"
//   - DefaultBranch — ветка по умолчанию на origin
//   - Warnings — предупреждения о расхождении с remote
//
// ## NormalizeRemote / DetectProvider
//
// Чистые функции над строкой URL:
//
//	NormalizeRemote("git@github.com:org/repo.git") // "org/repo"
//	DetectProvider("https://gitlab.com/org/repo")  // GITLAB
package gitrepo
