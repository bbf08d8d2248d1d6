// Command admin manages groups: posts can only be filed under groups created here.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/repository"
	"yatube/internal/service"

	"github.com/fatih/color"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin create-group <title> [slug] [description]  - Create a group")
	fmt.Println("  go run ./cmd/admin import-groups <file.yml>                    - Create groups from YAML")
	fmt.Println("  go run ./cmd/admin list-groups                                 - List all groups")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	groups := service.NewGroupService(repository.NewGroupRepository(db))
	ctx := context.Background()

	switch command := os.Args[1]; command {
	case "create-group":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		in := service.GroupInput{Title: os.Args[2]}
		if len(os.Args) > 3 {
			in.Slug = os.Args[3]
		}
		if len(os.Args) > 4 {
			in.Description = strings.Join(os.Args[4:], " ")
		}
		createGroup(ctx, groups, in)

	case "import-groups":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		importGroups(ctx, groups, os.Args[2])

	case "list-groups":
		listGroups(ctx, groups)

	default:
		color.Red("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}

func createGroup(ctx context.Context, groups *service.GroupService, in service.GroupInput) {
	group, err := groups.Create(ctx, in)
	if err != nil {
		color.Red("Failed to create group: %v\n", err)
		os.Exit(1)
	}
	color.Green("Created group %q (slug: %s, ID: %d)\n", group.Title, group.Slug, group.ID)
}

func importGroups(ctx context.Context, groups *service.GroupService, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	created, err := groups.Import(ctx, f)
	for _, g := range created {
		color.Green("Created group %q (slug: %s)\n", g.Title, g.Slug)
	}
	if err != nil {
		color.Red("Import stopped: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d groups\n", len(created))
}

func listGroups(ctx context.Context, groups *service.GroupService) {
	list, err := groups.List(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch groups: %v", err)
	}

	if len(list) == 0 {
		fmt.Println("No groups found")
		return
	}

	fmt.Println("─────────────────────────────────────")
	for _, g := range list {
		fmt.Printf("ID: %s | Slug: %s | Title: %s\n",
			color.CyanString("%d", g.ID), color.YellowString(g.Slug), g.Title)
	}
	fmt.Println("─────────────────────────────────────")
}
