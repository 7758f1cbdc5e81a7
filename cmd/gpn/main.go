// Command gpn is a terminal consumer of the GestPornub data-access facade:
// the same operations the mobile screens call, driven from flags instead of
// forms.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/gestpornub/client-go/internal/backend"
	"github.com/gestpornub/client-go/internal/config"
	"github.com/gestpornub/client-go/internal/model"
	"github.com/gestpornub/client-go/internal/service"
)

func usage() {
	fmt.Fprintf(os.Stderr, `gpn CLI
Usage:
  gpn [-v] <cmd> [args]

Commands:
  signup   -e <email> -p <password> -u <username>   (creates account, saves session)
  login    -e <email> -p <password>                 (saves session)
  logout
  whoami
  feed                                              (all posts)
  latest                                            (newest posts, max 7)
  search   -q <query>
  posts    -creator <userId>                        (defaults to current user)
  publish  -title <t> -thumbnail <file> -video <file> [-prompt <p>]

Configuration comes from GPN_* environment variables (or a .env file).
`)
	os.Exit(2)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// loadAsset opens a local file as an upload asset. An empty path means "no
// asset", which the facade treats as a no-op.
func loadAsset(path string) (*model.UploadAsset, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &model.UploadAsset{
		Name:     filepath.Base(path),
		MimeType: mimeType,
		Size:     stat.Size(),
		Data:     f,
	}, nil
}

func main() {
	verbose := flag.Bool("v", false, "log backend traffic")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		fail(err)
	}

	client := backend.NewClient(cfg, logger)
	auth := service.NewAuthService(client, cfg, logger)
	media := service.NewMediaService(client, cfg)
	posts := service.NewPostService(client, cfg, media)

	// restore installs the saved session on the shared client, or aborts
	// for commands that cannot run signed out.
	restore := func() {
		sf, err := loadSession()
		if err != nil {
			fail(err)
		}
		client.SetSession(sf.Secret)
	}

	switch cmd {

	case "signup":
		fs := flag.NewFlagSet("signup", flag.ExitOnError)
		email := fs.String("e", "", "email")
		password := fs.String("p", "", "password")
		username := fs.String("u", "", "username")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" || *password == "" || *username == "" {
			fmt.Fprintln(os.Stderr, "need -e, -p and -u")
			os.Exit(1)
		}

		user, err := auth.CreateUser(ctx, *email, *password, *username)
		if err != nil {
			fail(err)
		}
		// CreateUser signed us in as a side effect; persist that session.
		if err := saveSession(&model.Session{ID: model.CurrentSessionID, Secret: client.Session()}); err != nil {
			fail(err)
		}
		printJSON(user)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("e", "", "email")
		password := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "need -e and -p")
			os.Exit(1)
		}

		session, err := auth.SignIn(ctx, *email, *password)
		if err != nil {
			fail(err)
		}
		if err := saveSession(session); err != nil {
			fail(err)
		}
		fmt.Println("signed in")

	case "logout":
		restore()
		if err := auth.SignOut(ctx); err != nil {
			fail(err)
		}
		if err := clearSession(); err != nil {
			fail(err)
		}
		fmt.Println("signed out")

	case "whoami":
		restore()
		user, err := auth.CurrentUser(ctx)
		if err != nil {
			fail(err)
		}
		if user == nil {
			fmt.Println("not signed in")
			os.Exit(1)
		}
		printJSON(user)

	case "feed":
		restore()
		all, err := posts.AllPosts(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(all)

	case "latest":
		restore()
		latest, err := posts.LatestPosts(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(latest)

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		query := fs.String("q", "", "title query")
		_ = fs.Parse(flag.Args()[1:])

		restore()
		found, err := posts.SearchPosts(ctx, *query)
		if err != nil {
			fail(err)
		}
		printJSON(found)

	case "posts":
		fs := flag.NewFlagSet("posts", flag.ExitOnError)
		creator := fs.String("creator", "", "creator user id")
		_ = fs.Parse(flag.Args()[1:])

		restore()
		if *creator == "" {
			user, err := auth.CurrentUser(ctx)
			if err != nil || user == nil {
				fail(fmt.Errorf("no creator given and no signed-in user"))
			}
			*creator = user.ID
		}
		mine, err := posts.UserPosts(ctx, *creator)
		if err != nil {
			fail(err)
		}
		printJSON(mine)

	case "publish":
		fs := flag.NewFlagSet("publish", flag.ExitOnError)
		title := fs.String("title", "", "post title")
		thumbnail := fs.String("thumbnail", "", "thumbnail image file")
		video := fs.String("video", "", "video file")
		prompt := fs.String("prompt", "", "prompt text")
		_ = fs.Parse(flag.Args()[1:])
		if *title == "" || *thumbnail == "" || *video == "" {
			fmt.Fprintln(os.Stderr, "need -title, -thumbnail and -video")
			os.Exit(1)
		}

		restore()
		user, err := auth.CurrentUser(ctx)
		if err != nil || user == nil {
			fail(fmt.Errorf("publishing requires a signed-in user"))
		}

		thumbAsset, err := loadAsset(*thumbnail)
		if err != nil {
			fail(err)
		}
		videoAsset, err := loadAsset(*video)
		if err != nil {
			fail(err)
		}

		post, err := posts.CreateVideoPost(ctx, model.CreatePostForm{
			Title:     *title,
			Thumbnail: thumbAsset,
			Video:     videoAsset,
			Prompt:    *prompt,
			UserID:    user.ID,
		})
		if err != nil {
			fail(err)
		}
		printJSON(post)

	default:
		usage()
	}
}
