package cli

import (
	"errors"

	"github.com/shaiso/orchestra-cli/internal/gitrepo"
	"github.com/shaiso/orchestra-cli/internal/pipeline"
)

// fail печатает одну строку с описанием ошибки (и блок деталей, если
// есть) и возвращает ExitError с кодом 1.
//
// action — глагол для сообщений о статусе: "Create", "Update", "Import", "Run".
func fail(out *Output, action string, err error) error {
	var (
		loadErr       *pipeline.LoadError
		validationErr *ValidationError
		apiErr        *APIError
	)

	switch {
	case errors.Is(err, ErrMissingCredential):
		out.Error(err.Error())

	case errors.As(err, &loadErr) && errors.Is(err, pipeline.ErrFileNotFound):
		if loadErr.Reason != "" {
			out.Error("File not found: " + loadErr.Reason)
		} else {
			out.Error("File not found: " + loadErr.Path)
		}

	case errors.As(err, &loadErr) && errors.Is(err, pipeline.ErrInvalidYAML):
		out.Error("Invalid YAML: " + loadErr.Reason)

	case errors.As(err, &validationErr):
		out.Error("❌ Validation failed")
		if validationErr.Detail != "" {
			out.Detail(validationErr.Detail)
		}

	case errors.As(err, &apiErr) && errors.Is(err, ErrMalformedResponse):
		out.Error("❌ " + apiErr.Error())
		out.Detail(apiErr.Detail())

	case errors.As(err, &apiErr):
		out.Error("❌ " + apiErr.Error())
		if action == "Run" {
			out.Detail(apiErr.ContentDetail())
		} else {
			out.Detail(apiErr.Detail())
		}

	case errors.Is(err, ErrTransport):
		out.Error(err.Error())

	case errors.Is(err, gitrepo.ErrNotRepository):
		out.Error("Not a git repository (could not detect repository root)")

	case errors.Is(err, gitrepo.ErrSlugNotDetected), errors.Is(err, gitrepo.ErrNoDefaultBranch):
		out.Error("Could not detect repository URL or default branch from git")

	case errors.Is(err, gitrepo.ErrOutsideRepository):
		out.Error("YAML file must be inside the git repository")

	case errors.Is(err, ErrAborted):
		out.Error("Aborted")

	default:
		out.Error(err.Error())
	}

	return &ExitError{Code: 1}
}
