// Command seed fills the database with demo authors, groups and posts.
package main

import (
	"context"
	"flag"
	"log"

	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/seed"

	"github.com/fatih/color"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numGroups := flag.Int("groups", 5, "Number of groups to create")
	postsPerUser := flag.Int("posts", 15, "Number of posts per user")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Skip password hashing (seeded users cannot log in)")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible content (0 = random)")
	flag.Parse()

	color.HiBlack("Target: %d users, %d groups, %d posts per user, clean=%v\n",
		*numUsers, *numGroups, *postsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if *shouldClean {
		if err := seed.Clean(ctx, db); err != nil {
			color.Red("Cleanup failed: %v\n", err)
			log.Fatal(err)
		}
	}

	sum, err := seed.NewFactory(db, seed.Options{
		Users:        *numUsers,
		Groups:       *numGroups,
		PostsPerUser: *postsPerUser,
		SkipBcrypt:   *fast,
		Seed:         *randSeed,
	}).Run(ctx)
	if err != nil {
		color.Red("Seeding failed: %v\n", err)
		log.Fatal(err)
	}

	color.Green("Created %d users, %d groups, %d posts\n", sum.Users, sum.Groups, sum.Posts)
	if !*fast {
		color.Yellow("All demo users have the password: %s\n", seed.DemoPassword)
	}
}
