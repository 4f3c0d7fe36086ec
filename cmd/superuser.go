package cmd

import (
	"context"
	"errors"
	"fmt"

	"erp-backend/internal/dto/request"
	"erp-backend/internal/usecase"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// CreateSuperuser parses the createsuperuser flags and stores an active admin account.
func CreateSuperuser(ctx context.Context, accounts usecase.AccountService, args []string, logger *zap.Logger) error {
	req, err := parseSuperuserFlags(args)
	if err != nil {
		return err
	}

	user, err := accounts.CreateSuperuser(ctx, req)
	if err != nil {
		var verr *usecase.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid superuser: %s", verr.Error())
		}
		return fmt.Errorf("create superuser: %w", err)
	}

	logger.Info("Superuser created", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return nil
}

func parseSuperuserFlags(args []string) (*request.CreateUserRequest, error) {
	fs := pflag.NewFlagSet("createsuperuser", pflag.ContinueOnError)
	email := fs.String("email", "", "superuser email address")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	password := fs.String("password", "", "password, at least 8 characters")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *email == "" || *password == "" {
		return nil, errors.New("--email and --password are required")
	}

	return &request.CreateUserRequest{
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Password:  *password,
	}, nil
}
