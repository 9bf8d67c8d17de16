package domain

// UpsertPayload — тело запроса на создание или обновление pipeline,
// определение которого хранится в Orchestra.
//
// Alias передаётся только при создании. При обновлении pipeline
// адресуется alias'ом в пути URL, и поле опускается.
type UpsertPayload struct {
	// Data — распарсенное YAML-определение pipeline.
	Data map[string]any `json:"data"`

	// Published — можно ли запускать pipeline.
	Published bool `json:"published"`

	// StorageProvider — всегда ORCHESTRA для upsert.
	StorageProvider Provider `json:"storage_provider"`

	// Alias — короткий идентификатор pipeline, задаётся пользователем.
	Alias string `json:"alias,omitempty"`
}

// NewUpsertPayload создаёт payload для create (alias != "") или update (alias == "").
func NewUpsertPayload(data map[string]any, published bool, alias string) UpsertPayload {
	if data == nil {
		data = map[string]any{}
	}
	return UpsertPayload{
		Data:            data,
		Published:       published,
		StorageProvider: ProviderOrchestra,
		Alias:           alias,
	}
}

// ImportPayload — тело запроса на импорт pipeline по ссылке на YAML в git.
// Все поля обязательны.
type ImportPayload struct {
	StorageProvider Provider `json:"storage_provider"`

	// Repository — slug вида "owner/repo".
	Repository string `json:"repository"`

	DefaultBranch string `json:"default_branch"`

	// YAMLPath — путь к файлу относительно корня репозитория.
	YAMLPath string `json:"yaml_path"`

	Alias string `json:"alias"`
}

// Missing возвращает имена незаполненных полей.
func (p ImportPayload) Missing() []string {
	var missing []string
	if p.StorageProvider == "" {
		missing = append(missing, "storage_provider")
	}
	if p.Repository == "" {
		missing = append(missing, "repository")
	}
	if p.DefaultBranch == "" {
		missing = append(missing, "default_branch")
	}
	if p.YAMLPath == "" {
		missing = append(missing, "yaml_path")
	}
	if p.Alias == "" {
		missing = append(missing, "alias")
	}
	return missing
}

// RunPayload — параметры запуска pipeline.
//
// Пустые поля опускаются. Если оба поля пусты, запрос отправляется
// без тела (см. IsEmpty).
type RunPayload struct {
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// IsEmpty возвращает true, если не задана ни ветка, ни коммит.
func (p RunPayload) IsEmpty() bool {
	return p.Branch == "" && p.Commit == ""
}
