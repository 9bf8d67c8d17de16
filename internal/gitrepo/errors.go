package gitrepo

import "errors"

// Ошибки получения информации из git.
var (
	// ErrNotRepository — путь не находится внутри рабочего дерева git.
	ErrNotRepository = errors.New("not a git repository")

	// ErrNoRemote — remote origin не настроен или недоступен.
	ErrNoRemote = errors.New("no origin remote")

	// ErrNoDefaultBranch — не удалось определить ветку по умолчанию.
	ErrNoDefaultBranch = errors.New("default branch not detected")

	// ErrSlugNotDetected — из URL remote не удалось извлечь owner/repo.
	ErrSlugNotDetected = errors.New("repository slug not detected")

	// ErrOutsideRepository — файл лежит вне корня репозитория.
	ErrOutsideRepository = errors.New("path is outside the repository")
)
