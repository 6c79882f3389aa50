// Cria as tabelas de referência no Postgres e, opcionalmente, insere dados de exemplo
// para um usuário. Uso: go run ./infrastructure/migration/script -user <id>
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-template-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-template-api/internal/config"
	"github.com/vfg2006/order-template-api/internal/domain"
)

const (
	idLength   = 12
	characters = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS platforms (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS creators (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		commission_rate NUMERIC
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT,
		sku TEXT,
		costprice NUMERIC,
		"suggestedPrice" NUMERIC,
		"commissionRate" NUMERIC
	)`,
	`CREATE INDEX IF NOT EXISTS platforms_user_id_idx ON platforms (user_id)`,
	`CREATE INDEX IF NOT EXISTS creators_user_id_idx ON creators (user_id)`,
	`CREATE INDEX IF NOT EXISTS products_user_id_idx ON products (user_id)`,
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func ratePtr(v float64) *float64 {
	return &v
}

// Dados inseridos para o usuário de demonstração
var sampleDataset = domain.ReferenceDataset{
	Platforms: []domain.Platform{{Name: "TikTok"}, {Name: "Shopee"}, {Name: "Lazada"}},
	Creators: []domain.Creator{
		{Name: "ขายเอง"},
		{Name: "Mint Review", CommissionRate: ratePtr(10)},
	},
	Products: []domain.Product{
		{Name: "เซรั่มวิตามินซี", Category: "สกินแคร์", SKU: "SKN-001", CostPrice: 120, SuggestedPrice: 390, CommissionRate: ratePtr(15)},
		{Name: "ครีมกันแดด SPF50", Category: "สกินแคร์", SKU: "SKN-002", CostPrice: 95, SuggestedPrice: 290, CommissionRate: ratePtr(12)},
		{Name: "ลิปทินท์", Category: "เครื่องสำอาง", SKU: "MKP-001", CostPrice: 45, SuggestedPrice: 159},
	},
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

func generateID() string {
	id, err := gonanoid.Generate(characters, idLength)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar o user_id de demonstração")
	}
	return id
}

func main() {
	userID := flag.String("user", "", "user_id dono dos dados de exemplo (gerado quando vazio)")
	withSample := flag.Bool("seed", true, "insere os dados de exemplo")
	flag.Parse()

	setupLogger()

	dbConfig, err := config.NewDatabaseConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar a configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar a transação")
	}

	if err := migrate(ctx, tx); err != nil {
		_ = tx.Rollback()
		logrus.WithError(err).Fatal("Erro ao criar as tabelas")
	}

	owner := *userID
	if *withSample {
		if owner == "" {
			owner = generateID()
		}
		if err := seed(ctx, tx, owner, sampleDataset); err != nil {
			_ = tx.Rollback()
			logrus.WithError(err).Fatal("Erro ao inserir os dados de exemplo")
		}
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Fatal("Erro ao confirmar a transação")
	}

	logrus.WithField("user_id", owner).Info("Migração concluída")
}

func migrate(ctx context.Context, db execer) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao executar %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// seed insere o conjunto para o usuário. Coleções vazias são puladas.
func seed(ctx context.Context, db execer, userID string, ds domain.ReferenceDataset) error {
	var inserts []squirrel.InsertBuilder

	if len(ds.Platforms) > 0 {
		q := squirrel.Insert(domain.PlatformsCollection).Columns("user_id", "name")
		for _, p := range ds.Platforms {
			q = q.Values(userID, p.Name)
		}
		inserts = append(inserts, q)
	}

	if len(ds.Creators) > 0 {
		q := squirrel.Insert(domain.CreatorsCollection).Columns("user_id", "name", "commission_rate")
		for _, c := range ds.Creators {
			q = q.Values(userID, c.Name, c.CommissionRate)
		}
		inserts = append(inserts, q)
	}

	if len(ds.Products) > 0 {
		q := squirrel.Insert(domain.ProductsCollection).
			Columns("user_id", "name", "category", "sku", "costprice", `"suggestedPrice"`, `"commissionRate"`)
		for _, p := range ds.Products {
			q = q.Values(userID, p.Name, p.Category, p.SKU, p.CostPrice, p.SuggestedPrice, p.CommissionRate)
		}
		inserts = append(inserts, q)
	}

	for _, insert := range inserts {
		query, args, err := insert.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir insert: %w", err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("erro ao inserir dados de exemplo: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"platforms": len(ds.Platforms),
		"creators":  len(ds.Creators),
		"products":  len(ds.Products),
	}).Info("Dados de exemplo inseridos")

	return nil
}

func firstLine(stmt string) string {
	for i, r := range stmt {
		if r == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
