package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"libris/internal/api"
	"libris/internal/session"
	apperrors "libris/pkg/errors"
)

func cmdLogin(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var username, password string
	fs.StringVar(&username, "username", "", "Account email or username")
	fs.StringVar(&password, "password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if username == "" || password == "" {
		return errors.New("login: -username and -password are required")
	}

	sess, user, err := env.manager.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Role)
	fmt.Printf("Session %s expires %s\n", sess.ID, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func cmdLogout(ctx context.Context, env *environment) error {
	if err := env.manager.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func cmdWhoami(env *environment) error {
	user, err := env.store.User()
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrNoActiveSession
	}

	fmt.Printf("%s <%s> role=%s verified=%t\n", user.Username, user.Email, user.Role, user.IsVerified)

	token, ok, err := env.store.Token()
	if err != nil || !ok {
		return err
	}
	claims, err := session.InspectToken(token)
	if err == nil && !claims.ExpiresAt.IsZero() {
		fmt.Printf("Token expires %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func cmdRegister(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var req api.RegisterRequest
	fs.StringVar(&req.Email, "email", "", "Email address")
	fs.StringVar(&req.Password, "password", "", "Password")
	fs.StringVar(&req.Username, "username", "", "Username")
	fs.StringVar(&req.FullName, "full-name", "", "Full name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := env.accounts.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Account %s created; check %s for the verification code\n", user.Username, user.Email)
	return nil
}

func cmdForgotPassword(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var email string
	fs.StringVar(&email, "email", "", "Account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if email == "" {
		return errors.New("forgot-password: -email is required")
	}

	if err := env.accounts.ForgotPassword(ctx, email); err != nil {
		return err
	}
	fmt.Printf("Reset code sent to %s\n", email)
	return nil
}

func cmdResetPassword(ctx context.Context, env *environment, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var req api.ResetPasswordRequest
	fs.StringVar(&req.Email, "email", "", "Account email")
	fs.StringVar(&req.Code, "code", "", "Reset code from the email")
	fs.StringVar(&req.NewPassword, "new-password", "", "New password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := env.accounts.ResetPassword(ctx, req); err != nil {
		return err
	}
	fmt.Println("Password updated; sign in with the new password")
	return nil
}

func cmdSessions(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return errors.New("sessions: expected list or revoke")
	}

	switch args[0] {
	case "list":
		sessions, err := env.manager.ListActive(ctx)
		if err != nil {
			return err
		}
		current, _ := env.manager.Current()
		for _, s := range sessions {
			marker := " "
			if current != nil && s.ID == current.ID {
				marker = "*"
			}
			fmt.Printf("%s %s  %-15s  %s  expires %s\n",
				marker, s.ID, s.IPAddress, s.UserAgent, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		return nil

	case "revoke":
		fs := flag.NewFlagSet("sessions revoke", flag.ContinueOnError)
		fs.SetOutput(os.Stdout)
		var id string
		fs.StringVar(&id, "id", "", "Session ID to revoke")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := env.manager.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Session %s revoked\n", id)
		return nil

	default:
		return fmt.Errorf("sessions: unknown subcommand %q", args[0])
	}
}
