// Command token mints an access token for a given actor, for local use of
// the API without a login flow.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/config"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/repository/postgresql"
)

func main() {
	var (
		id         = flag.String("id", "", "user id (required)")
		name       = flag.String("name", "", "display name, defaults to the id")
		role       = flag.String("role", string(user.RoleEmployee), "admin, hr, manager or employee")
		department = flag.String("department", string(user.DepartmentSales), "sales, production, hr or admin")
		upsert     = flag.Bool("upsert", false, "also write the user to the PostgreSQL directory")
	)
	flag.Parse()

	if err := run(*id, *name, *role, *department, *upsert); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func run(id, name, role, department string, upsert bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u, err := user.ParseSeed(fmt.Sprintf("%s:%s:%s:%s", id, name, role, department))
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if upsert {
		if cfg.Storage.Driver != config.StorageDriverPostgres {
			return fmt.Errorf("-upsert needs STORAGE_DRIVER=%s, use SEED_USERS otherwise", config.StorageDriverPostgres)
		}
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: 1})
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			return err
		}
		if _, err := postgresql.NewUserRepository(db).Upsert(ctx, u); err != nil {
			return err
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.SSEExpiration)
	token, expiresAt, err := JWTService.GenerateAccessToken(user.Actor{
		ID:         u.ID,
		Name:       u.DisplayName(),
		Role:       u.Role,
		Department: u.Department,
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}
