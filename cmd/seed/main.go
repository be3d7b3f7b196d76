package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/service/password"
)

// Seeds a small tenancy tree (acme with two child orgs) plus one user per
// role and a handful of tasks, for local development and demos.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	hasher := password.NewBcryptPasswordService(0)
	hash, err := hasher.HashPassword("taskhive-demo")
	if err != nil {
		log.Fatalf("failed to hash demo password: %v", err)
	}

	orgs := []struct {
		id     string
		name   string
		parent *string
	}{
		{"org-acme", "Acme", nil},
		{"org-acme-eu", "Acme EU", ptr("org-acme")},
		{"org-acme-us", "Acme US", ptr("org-acme")},
	}
	for _, o := range orgs {
		_, err := db.Exec(
			`INSERT INTO organizations (id, name, parent_id, created_at) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO NOTHING`,
			o.id, o.name, o.parent, time.Now().UTC(),
		)
		if err != nil {
			log.Fatalf("failed to seed organization %s: %v", o.id, err)
		}
	}

	users := []struct {
		email string
		name  string
		role  domain.Role
		org   string
	}{
		{"owner@acme.test", "Olive Owner", domain.RoleOwner, "org-acme"},
		{"admin@acme.test", "Avery Admin", domain.RoleAdmin, "org-acme-eu"},
		{"viewer@acme.test", "Val Viewer", domain.RoleViewer, "org-acme-us"},
	}
	for _, u := range users {
		_, err := db.Exec(
			`INSERT INTO users (id, email, name, role, organization_id, password_hash) VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (email) DO NOTHING`,
			uuid.NewString(), u.email, u.name, string(u.role), u.org, hash,
		)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
	}

	var ownerID string
	if err := db.QueryRow(`SELECT id FROM users WHERE email = $1`, "owner@acme.test").Scan(&ownerID); err != nil {
		log.Fatalf("failed to look up seed owner: %v", err)
	}

	tasks := []struct {
		title    string
		category domain.TaskCategory
		priority domain.TaskPriority
		org      string
	}{
		{"Draft Q3 roadmap", domain.TaskCategoryWork, domain.TaskPriorityHigh, "org-acme"},
		{"Renew office lease", domain.TaskCategoryWork, domain.TaskPriorityMedium, "org-acme-eu"},
		{"Order team swag", domain.TaskCategoryShopping, domain.TaskPriorityLow, "org-acme-us"},
	}
	for _, t := range tasks {
		task := domain.NewTask(t.title, "", t.category, t.priority, t.org, ownerID)
		_, err := db.Exec(
			`INSERT INTO tasks (id, title, description, category, priority, status, organization_id, created_by, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			task.ID, task.Title, task.Description, string(task.Category), string(task.Priority),
			string(task.Status), task.OrganizationID, task.CreatedBy, task.CreatedAt, task.UpdatedAt,
		)
		if err != nil {
			log.Fatalf("failed to seed task %q: %v", t.title, err)
		}
	}

	log.Println("seed data inserted")
}

func ptr(s string) *string { return &s }
