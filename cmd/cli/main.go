package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"moviehub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type movieListResponse struct {
	Count int            `json:"count"`
	Items []models.Movie `json:"items"`
}

func main() {
	global := flag.NewFlagSet("moviehub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "server base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "movies":
		handleMovies(ctx, client, *baseURL, sub, args[2:])
	case "export":
		handleExport(ctx, client, *baseURL, sub, args[2:])
	case "watch":
		handleWatch(*baseURL, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *name == "" || *email == "" || *password == "" {
			log.Fatal("name, email, and password are required")
		}

		payload := map[string]string{"name": *name, "email": *email, "password": *password}
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/api/auth/register", "", payload, nil); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		// registering never logs in; the account is created, nothing more
		fmt.Println("✅ account created, now run: moviehub auth login")
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp loginResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/api/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Printf("✅ logged in (token valid until %s)\n", resp.ExpiresAt)
	case "logout":
		// tell the server first so outstanding tokens die with the session
		if token, err := readToken(tokenPath); err == nil && token != "" {
			if err := doJSON(ctx, client, http.MethodPost, baseURL+"/api/auth/logout", token, nil, nil); err != nil {
				log.Printf("server logout: %v", err)
			}
		}
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	case "me":
		token := mustToken(tokenPath)
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/api/me", token, nil, &resp); err != nil {
			log.Fatalf("me failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: moviehub auth <register|login|logout|me>")
	}
}

func handleMovies(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "trending", "popular", "top-rated":
		var resp movieListResponse
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/api/movies/"+sub, "", nil, &resp); err != nil {
			log.Fatalf("%s failed: %v", sub, err)
		}
		printJSON(resp)
	case "genre":
		fs := flag.NewFlagSet("movies genre", flag.ExitOnError)
		id := fs.Int("id", 0, "genre id (28 action, 35 comedy, ...)")
		sortKey := fs.String("sort", "", "sort key, e.g. popularity.desc")
		_ = fs.Parse(args)
		if *id <= 0 {
			log.Fatal("genre id is required")
		}

		u, err := url.Parse(fmt.Sprintf("%s/api/movies/genre/%d", baseURL, *id))
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		if *sortKey != "" {
			qv := u.Query()
			qv.Set("sort", *sortKey)
			u.RawQuery = qv.Encode()
		}

		var resp movieListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			log.Fatalf("genre failed: %v", err)
		}
		printJSON(resp)
	case "search":
		fs := flag.NewFlagSet("movies search", flag.ExitOnError)
		query := fs.String("q", "", "search query")
		_ = fs.Parse(args)
		if strings.TrimSpace(*query) == "" {
			log.Fatal("search query is required")
		}

		u, err := url.Parse(baseURL + "/api/movies/search")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		qv.Set("q", *query)
		u.RawQuery = qv.Encode()

		var resp movieListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			log.Fatalf("search failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("movies show", flag.ExitOnError)
		id := fs.Int64("id", 0, "movie id")
		_ = fs.Parse(args)
		if *id <= 0 {
			log.Fatal("movie id is required")
		}

		var resp models.MovieDetail
		if err := doJSON(ctx, client, http.MethodGet, fmt.Sprintf("%s/api/movies/%d", baseURL, *id), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: moviehub movies <trending|popular|top-rated|genre|search|show>")
	}
}

func handleExport(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "json":
		fs := flag.NewFlagSet("export json", flag.ExitOnError)
		out := fs.String("out", "data/movies.json", "output JSON path")
		source := fs.String("source", "trending", "trending|popular|top-rated")
		query := fs.String("q", "", "export search results instead of a category")
		_ = fs.Parse(args)

		items, err := fetchMovies(ctx, client, baseURL, *source, *query)
		if err != nil {
			log.Fatalf("export json failed: %v", err)
		}
		if err := writeJSON(*out, items); err != nil {
			log.Fatalf("write json failed: %v", err)
		}
		log.Printf("✅ exported %d movies to %s", len(items), *out)
	case "csv":
		fs := flag.NewFlagSet("export csv", flag.ExitOnError)
		out := fs.String("out", "data/movies.csv", "output CSV path")
		source := fs.String("source", "trending", "trending|popular|top-rated")
		query := fs.String("q", "", "export search results instead of a category")
		_ = fs.Parse(args)

		items, err := fetchMovies(ctx, client, baseURL, *source, *query)
		if err != nil {
			log.Fatalf("export csv failed: %v", err)
		}
		if err := writeCSV(*out, items); err != nil {
			log.Fatalf("write csv failed: %v", err)
		}
		log.Printf("✅ exported %d movies to %s", len(items), *out)
	default:
		log.Fatal("usage: moviehub export <json|csv>")
	}
}

func handleWatch(baseURL string, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on the API host)")
	pretty := fs.Bool("pretty", true, "pretty print JSON events")
	_ = fs.Parse(args)

	endpoint := *wsURL
	if endpoint == "" {
		var err error
		endpoint, err = websocketURL(baseURL, "/ws")
		if err != nil {
			log.Fatalf("ws url: %v", err)
		}
	}

	for {
		if err := runWatch(endpoint, *pretty); err != nil {
			log.Printf("[watch] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second)
	}
}

func runWatch(wsURL string, pretty bool) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Printf("[watch] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if !pretty {
			fmt.Println(string(msg))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(msg, &obj); err != nil {
			fmt.Println(string(msg))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
}

func fetchMovies(ctx context.Context, client *http.Client, baseURL, source, query string) ([]models.Movie, error) {
	var endpoint string
	switch {
	case strings.TrimSpace(query) != "":
		u, err := url.Parse(baseURL + "/api/movies/search")
		if err != nil {
			return nil, err
		}
		qv := u.Query()
		qv.Set("q", query)
		u.RawQuery = qv.Encode()
		endpoint = u.String()
	case source == "trending" || source == "popular" || source == "top-rated":
		endpoint = baseURL + "/api/movies/" + source
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}

	var resp movieListResponse
	if err := doJSON(ctx, client, http.MethodGet, endpoint, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func writeJSON(path string, items []models.Movie) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, items []models.Movie) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "title", "release_date", "vote_average", "genre_ids", "overview", "poster_path",
	}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.ReleaseDate,
			strconv.FormatFloat(item.VoteAverage, 'f', 1, 64),
			joinInts(item.GenreIDs),
			item.Overview,
			item.PosterPath,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func joinInts(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.moviehub-token.json"
	}
	return filepath.Join(home, ".moviehub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("moviehub <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth register|login|logout|me")
	fmt.Println("  movies trending|popular|top-rated|genre|search|show")
	fmt.Println("  export json|csv")
	fmt.Println("  watch")
}
