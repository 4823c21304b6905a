package repository

import "embed"

// MigrationsFS - SQL миграции схемы thumbnails, вшитые в бинарник.
// Применяются через pkg/migration при старте с postgres бэкендом.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
