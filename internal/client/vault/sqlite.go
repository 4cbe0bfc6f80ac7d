package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shoppal/internal/client/migrations"
	"github.com/dmitrijs2005/shoppal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/shoppal/internal/common"
	"github.com/dmitrijs2005/shoppal/internal/cryptox"
	"github.com/dmitrijs2005/shoppal/internal/dbx"
	"github.com/dmitrijs2005/shoppal/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const saltKey = "vault.salt"

// SQLiteVault seals each entry with AES-GCM before writing it to the
// metadata table. The sealing key is derived from the passphrase and a
// random salt created on first use and kept in the same database.
type SQLiteVault struct {
	db   *sql.DB
	repo metadata.Repository
	key  []byte
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenSQLiteVault opens (creating if needed) the database at dsn, migrates
// it and derives the sealing key from passphrase.
func OpenSQLiteVault(ctx context.Context, dsn string, passphrase []byte) (*SQLiteVault, error) {
	if len(passphrase) == 0 {
		return nil, ErrMissingPassphrase
	}

	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open vault database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate vault database: %w", err)
	}

	salt, err := loadOrCreateSalt(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteVault{
		db:   db,
		repo: metadata.NewSQLiteRepository(db),
		key:  cryptox.DeriveKey(passphrase, salt),
	}, nil
}

func loadOrCreateSalt(ctx context.Context, db *sql.DB) ([]byte, error) {
	var salt []byte
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		// A concurrent opener may have won the race; the stored salt wins.
		if _, err := repo.Insert(ctx, saltKey, common.GenerateRandByteArray(cryptox.SaltSize)); err != nil {
			return err
		}

		stored, found, err := repo.Get(ctx, saltKey)
		if err != nil {
			return err
		}
		if !found || len(stored) != cryptox.SaltSize {
			return ErrCorruptSalt
		}
		salt = stored
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault salt: %w", err)
	}
	return salt, nil
}

func (v *SQLiteVault) Get(ctx context.Context, service, account string) ([]byte, error) {
	sealed, found, err := v.repo.Get(ctx, entryKey(service, account))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	value, err := cryptox.Open(v.key, sealed)
	if err != nil {
		return nil, fmt.Errorf("vault entry %s/%s: %w", service, account, err)
	}
	return value, nil
}

func (v *SQLiteVault) Set(ctx context.Context, service, account string, value []byte) error {
	sealed, err := cryptox.Seal(v.key, value)
	if err != nil {
		return fmt.Errorf("seal vault entry: %w", err)
	}
	return v.repo.Put(ctx, entryKey(service, account), sealed)
}

func (v *SQLiteVault) Delete(ctx context.Context, service, account string) error {
	return v.repo.Delete(ctx, entryKey(service, account))
}

func (v *SQLiteVault) Close() error {
	common.WipeByteArray(v.key)
	if err := v.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
