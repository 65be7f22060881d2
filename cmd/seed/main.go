package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"officebook/internal/database"
	"officebook/internal/domain"
	"officebook/internal/repository"
)

// Seeds a demo branch with a few offices and a weekday membership so the API
// is usable right after a fresh migration.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("level=info msg=no .env file, using process environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "officebook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	branches := repository.NewBranchRepository(db)
	offices := repository.NewOfficeRepository(db)
	memberships := repository.NewMembershipRepository(db)

	ownerHash, err := bcrypt.GenerateFromPassword([]byte("owner-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	owner := &domain.User{
		Email:        "owner@officebook.local",
		PasswordHash: string(ownerHash),
		Name:         "Demo Owner",
		Role:         domain.RoleBranchOwner,
	}
	if err := users.Create(ctx, owner); err != nil {
		log.Fatal(err)
	}

	renterHash, err := bcrypt.GenerateFromPassword([]byte("renter-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	renter := &domain.User{
		Email:        "renter@officebook.local",
		PasswordHash: string(renterHash),
		Name:         "Demo Renter",
		Role:         domain.RoleRenter,
	}
	if err := users.Create(ctx, renter); err != nil {
		log.Fatal(err)
	}

	branch := &domain.OfficeBranch{
		Name:       "Downtown Hub",
		City:       "Almaty",
		Street:     "Abay Ave 44",
		OwnerEmail: owner.Email,
	}
	if err := branches.Create(ctx, branch); err != nil {
		log.Fatal(err)
	}

	demoOffices := []*domain.Office{
		{BranchID: branch.ID, Name: "Focus Room", Price: 400, Capacity: 2, Privacy: domain.OfficePrivate},
		{BranchID: branch.ID, Name: "Team Space", Price: 900, Capacity: 8, Privacy: domain.OfficePrivate},
		{BranchID: branch.ID, Name: "Open Desk", Price: 150, Capacity: 1, Privacy: domain.OfficeShared},
	}
	for _, o := range demoOffices {
		if err := offices.Create(ctx, o); err != nil {
			log.Fatal(err)
		}
	}

	// Focus Room is closed every Monday.
	monday := time.Monday
	in, err := domain.NewInactivity(demoOffices[0].ID, nil, &monday)
	if err != nil {
		log.Fatal(err)
	}
	if err := offices.AddInactivity(ctx, in); err != nil {
		log.Fatal(err)
	}

	m := &domain.Membership{
		BranchID: branch.ID,
		Name:     "Weekday Pass",
		Price:    5000,
		Days:     []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	}
	if err := memberships.CreateMembership(ctx, m); err != nil {
		log.Fatal(err)
	}

	log.Printf("level=info msg=seed complete branch_id=%d offices=%d membership_id=%d", branch.ID, len(demoOffices), m.ID)
}
