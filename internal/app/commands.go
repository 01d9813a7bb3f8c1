package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/eddiesosera/bb-frontend/internal/models"
	"github.com/eddiesosera/bb-frontend/internal/upload"
)

func runRegister(ctx context.Context, deps Dependencies, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email address")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" || *password == "" {
		return errors.New("register requires -username, -email, and -password")
	}

	if err := deps.Session.Register(ctx, *username, *email, *password); err != nil {
		return actionError(err, deps.Session.Snapshot().LastError)
	}

	snap := deps.Session.Snapshot()
	fmt.Printf("registered as %s (%s)\n", snap.Author.Username, snap.AuthorID)
	return nil
}

func runLogin(ctx context.Context, deps Dependencies, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("login requires -username and -password")
	}

	if err := deps.Session.Login(ctx, *username, *password); err != nil {
		return actionError(err, deps.Session.Snapshot().LastError)
	}

	snap := deps.Session.Snapshot()
	fmt.Printf("logged in as %s\n", snap.Author.Username)
	return nil
}

func runLogout(ctx context.Context, deps Dependencies) error {
	deps.Session.Logout(ctx)
	fmt.Println("logged out")
	return nil
}

func runWhoami(ctx context.Context, deps Dependencies) error {
	if err := deps.Session.FetchCurrentUser(ctx); err != nil {
		return actionError(err, deps.Session.Snapshot().LastError)
	}

	snap := deps.Session.Snapshot()
	fmt.Printf("%s <%s> (%s)\n", snap.Author.Username, snap.Author.Email, snap.AuthorID)
	return nil
}

func runArticles(ctx context.Context, deps Dependencies) error {
	if err := deps.Articles.List(ctx); err != nil {
		return actionError(err, deps.Articles.Snapshot().LastError)
	}

	snap := deps.Articles.Snapshot()
	if len(snap.Items) == 0 {
		fmt.Println("no articles")
		return nil
	}
	for _, article := range snap.Items {
		fmt.Printf("%s  [%s]  %s\n", article.ID, article.Category, article.Title)
	}
	return nil
}

func runRead(ctx context.Context, deps Dependencies, args []string) error {
	if len(args) != 1 {
		return errors.New("read requires an article slug")
	}

	if err := deps.Articles.Get(ctx, args[0]); err != nil {
		return actionError(err, deps.Articles.Snapshot().LastError)
	}

	article := deps.Articles.Snapshot().Current
	fmt.Printf("%s\n[%s]\n\n%s\n", article.Title, article.Category, article.Content)
	if article.ImageCover != "" {
		fmt.Printf("\ncover: %s\n", article.ImageCover)
	}
	return nil
}

func runPost(ctx context.Context, deps Dependencies, args []string) error {
	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	title := fs.String("title", "", "article title")
	content := fs.String("content", "", "article body")
	category := fs.String("category", "", "article category")
	imagePath := fs.String("image", "", "path to a cover image to upload first")
	imageURL := fs.String("image-url", "", "already-hosted cover image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token := deps.Session.Token()
	if token == "" {
		return errors.New("login required")
	}

	coverURL := *imageURL
	if *imagePath != "" {
		url, err := uploadCover(ctx, deps, *imagePath)
		if err != nil {
			return err
		}
		coverURL = url
	}

	draft := models.Draft{
		Title:      *title,
		Content:    *content,
		Category:   *category,
		ImageCover: coverURL,
		AuthorID:   deps.Session.Snapshot().AuthorID,
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	article, err := deps.Articles.Create(ctx, token, draft)
	if err != nil {
		return actionError(err, deps.Articles.Snapshot().LastError)
	}

	fmt.Printf("created article %s\n", article.ID)
	return nil
}

func runDelete(ctx context.Context, deps Dependencies, args []string) error {
	if len(args) != 1 {
		return errors.New("delete requires an article id")
	}

	token := deps.Session.Token()
	if token == "" {
		return errors.New("login required")
	}

	if err := deps.Articles.Delete(ctx, token, args[0]); err != nil {
		return actionError(err, deps.Articles.Snapshot().LastError)
	}

	fmt.Printf("deleted article %s\n", args[0])
	return nil
}

func runUpload(ctx context.Context, deps Dependencies, args []string) error {
	if len(args) != 1 {
		return errors.New("upload requires an image path")
	}

	url, err := uploadCover(ctx, deps, args[0])
	if err != nil {
		return err
	}

	fmt.Println(url)
	return nil
}

// actionError surfaces the store's normalized message when one was recorded,
// falling back to the dispatch error itself.
func actionError(err error, lastError string) error {
	if lastError != "" {
		return errors.New(lastError)
	}
	return err
}

// uploadCover runs the full image flow: constraint checks, gateway transfer
// with progress on stderr, and the resulting hosted URL.
func uploadCover(ctx context.Context, deps Dependencies, path string) (string, error) {
	file, closeFile, err := upload.Open(path)
	if err != nil {
		return "", err
	}
	defer closeFile()

	gateway, err := buildUploader(ctx, deps.Config)
	if err != nil {
		return "", err
	}

	sess := upload.NewSession(file)
	url, err := sess.Run(ctx, gateway, func(percent int) {
		fmt.Fprintf(os.Stderr, "\ruploading %s: %3d%%", file.Name, percent)
	})
	if sess.Progress() > 0 {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return "", err
	}
	return url, nil
}
