package db

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestClientPingAndClose(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	client := &Client{conn: conn}

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if client.DB() == nil {
		t.Fatal("expected underlying gorm handle")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error is not a violation")
	}
	err := errString("duplicate key value violates unique constraint \"idx_users_email\"")
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected postgres duplicate to match")
	}
	if !IsUniqueViolation(err, "idx_users_email") {
		t.Fatal("expected named constraint to match")
	}
	if IsUniqueViolation(err, "idx_other") {
		t.Fatal("unexpected match for unrelated constraint")
	}
	if !IsUniqueViolation(errString("UNIQUE constraint failed: users.email"), "") {
		t.Fatal("expected sqlite duplicate to match")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
