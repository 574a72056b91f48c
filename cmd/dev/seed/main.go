// Command seed wipes all rows and loads the sample data set: three accounts
// (admin/admin123, student/student123, guest/guest123) and the demo catalog.
// Dev only.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	"spacebook/internal/user"
	"spacebook/pkg/config"
	"spacebook/pkg/db"
)

type seedResource struct {
	name         string
	resourceType string
	description  string
	hidden       bool
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE audit_logs, bookings, resources, spaces, users RESTART IDENTITY`); err != nil {
			return err
		}

		fmt.Println("creating default users...")
		users := []struct {
			username string
			password string
			mask     int
		}{
			{"admin", "admin123", 7},     // Admin + Book + View
			{"student", "student123", 6}, // Book + View
			{"guest", "guest123", 4},     // View only
		}
		for _, u := range users {
			hash, err := user.HashPassword(u.password)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO users (username, password_hash, permission_mask) VALUES ($1, $2, $3)`,
				u.username, hash, u.mask,
			); err != nil {
				return err
			}
		}

		fmt.Println("creating sample spaces...")
		spaces := []struct {
			name        string
			description string
			imageURL    string
			resources   []seedResource
		}{
			{
				name:        "Main Library",
				description: "A quiet study environment with power outlets and Wi-Fi.",
				imageURL:    "https://lib.ntut.edu.tw/public/data/8531652371.JPG",
				resources: []seedResource{
					{"Seat A1", "Seat", "", false},
					{"Seat A2", "Seat", "", false},
					{"Seat A3", "Seat", "", false},
					{"Seat B1", "Seat", "", false},
					{"Seat B2", "Seat", "", false},
					{"Seat B3", "Seat", "", false},
					{"Discussion Room 1", "Meeting Room", "3-6 People", false},
					{"Discussion Room 2", "Meeting Room", "3-6 People", false},
					{"Discussion Room 3", "Meeting Room", "3-6 People", false},
					{"iPad 10 [01]", "Computer", "14-day loan period", false},
					{"iPad 10 [02]", "Computer", "14-day loan period", false},
					{"iPad 10 [03]", "Computer", "14-day loan period", false},
				},
			},
			{
				name:        "Programming Club Office",
				description: "Equipped with 3 PCs and 7 Raspberry Pi units available for borrow.",
				imageURL:    "https://i.imgur.com/pMSmPA8.webp",
				resources: []seedResource{
					{"Raspberry Pi 01", "Computer", "Debian 13", false},
					{"Raspberry Pi 02", "Computer", "Debian 13", false},
					{"Raspberry Pi 03", "Computer", "Debian 13", false},
					{"Bed", "Seat", "Kevin's spot", false},
					{"Seat 01", "Seat", "Folding Chair", false},
					{"Seat 02", "Seat", "Folding Chair", false},
					{"Seat 05", "Seat", "Recliner", false},
					{"Seat 06", "Seat", "Recliner", false},
					{"Workstation 01", "Computer", "Ubuntu 24.04 LTS", false},
					{"Workstation 02", "Computer", "Windows 11", false},
					{"Workstation 03", "Computer", "Ubuntu 23.10", true},
				},
			},
			{
				name:        "Room 313 (Lab)",
				description: "Computer lab, reservations only accepted for club course hours.",
				imageURL:    "https://mapsys.oga.ntut.edu.tw/gisweb/public/uploadfiles.htm?action=listImg&q=40",
				resources: []seedResource{
					{"313-01", "Seat", "Windows 11", false},
					{"313-02", "Seat", "Windows 11", false},
					{"313-03", "Seat", "Windows 11", false},
					{"313-04", "Seat", "Windows 11", false},
				},
			},
		}

		for _, s := range spaces {
			var spaceID int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO spaces (name, description, image_url) VALUES ($1, $2, $3) RETURNING id`,
				s.name, s.description, s.imageURL,
			).Scan(&spaceID); err != nil {
				return err
			}
			for _, res := range s.resources {
				if _, err := tx.Exec(ctx,
					`INSERT INTO resources (space_id, name, resource_type, description, is_hidden) VALUES ($1, $2, $3, $4, $5)`,
					spaceID, res.name, res.resourceType, res.description, res.hidden,
				); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("seed complete")
	fmt.Println("admin account: admin / admin123 (mask 7)")
	fmt.Println("student account: student / student123 (mask 6)")
}
