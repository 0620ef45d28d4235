package storage

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

// DB representa a conexão com o banco de dados PostgreSQL, o Ledger Store
// do marketplace. Construído uma vez em main e injetado nos services.
type DB struct {
	*sqlx.DB
	log *logrus.Entry
}

// NewDB conecta-se ao PostgreSQL e executa as migrações.
func NewDB(dataSourceName string, log *logrus.Logger) (*DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("falha ao pingar o banco de dados: %w", err)
	}
	entry := log.WithField("component", "storage")
	entry.Info("Conexão com PostgreSQL estabelecida com sucesso.")

	if err := runMigrations(db.DB, entry); err != nil {
		return nil, fmt.Errorf("falha ao executar migrações: %w", err)
	}

	return &DB{DB: db, log: entry}, nil
}

// runMigrations executa as migrações usando sql-migrate.
func runMigrations(db *sql.DB, log *logrus.Entry) error {
	migrations := &migrate.FileMigrationSource{
		Dir: "./storage/migrations",
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	if n > 0 {
		log.WithField("count", n).Info("Migrações aplicadas ao banco de dados.")
	} else {
		log.Info("Nenhuma migração nova para aplicar.")
	}
	return nil
}
