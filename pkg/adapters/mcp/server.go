package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/storefront/internal/logging"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/runner"
	"github.com/aretw0/storefront/pkg/session"
)

const (
	catalogURI = "storefront://catalog"
	graphURI   = "storefront://graph"
)

// SessionResponse is shared with the HTTP adapter so clients see one shape everywhere.
type SessionResponse = runner.RichResponse

// Server exposes storefront sessions as MCP tools.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
	maxInput  int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for rejected calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize bounds string arguments in bytes. Zero keeps the runner default.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInput = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, version string, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("storefront-mcp", version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Open a shopping session on the landing page. Resumes the session if it already exists."),
		mcp.WithString("session_id", mcp.Description("Session ID (generated when omitted)")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleStartSession))

	s.mcpServer.AddTool(mcp.NewTool("view_page",
		mcp.WithDescription("Render the current page of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleViewPage))

	s.mcpServer.AddTool(mcp.NewTool("dispatch_intent",
		mcp.WithDescription("Apply a shopper action to a session: cart changes, navigation or checkout."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("type", mcp.Required(),
			mcp.Description("Intent type"),
			mcp.Enum(
				string(domain.IntentAddToCart),
				string(domain.IntentIncreaseQuantity),
				string(domain.IntentDecreaseQuantity),
				string(domain.IntentRemoveFromCart),
				string(domain.IntentNavigate),
				string(domain.IntentCheckout),
			),
		),
		mcp.WithNumber("product_id", mcp.Description("Catalog product ID for cart intents")),
		mcp.WithString("page", mcp.Description("Target page for NAVIGATE: landing, products or cart")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleDispatchIntent))

	s.mcpServer.AddTool(mcp.NewTool("list_catalog",
		mcp.WithDescription("List the plant catalog grouped by category."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(s.sessions.Engine().Catalog().Categories())
	})

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the page navigation graph for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(s.sessions.Engine().Inspect())
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	id, err := s.stringArg(args, "session_id")
	if err != nil {
		return SessionResponse{}, err
	}
	if id == "" {
		id = uuid.NewString()
	}
	resp, err := runner.StartAndRender(ctx, s.sessions, id)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("start failed: %w", err)
	}
	return *resp, nil
}

func (s *Server) handleViewPage(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	id, err := s.stringArg(args, "session_id")
	if err != nil {
		return SessionResponse{}, err
	}
	resp, err := runner.LoadAndRender(ctx, s.sessions, id)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("view failed: %w", err)
	}
	return *resp, nil
}

func (s *Server) handleDispatchIntent(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	id, err := s.stringArg(args, "session_id")
	if err != nil {
		return SessionResponse{}, err
	}
	intent, err := s.intentFromArgs(args)
	if err != nil {
		s.logger.Warn("MCP dispatch: intent rejected", "err", err, "session_id", id)
		return SessionResponse{}, err
	}

	resp, err := runner.ApplyAndRender(ctx, s.sessions, id, intent)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("dispatch failed: %w", err)
	}
	return *resp, nil
}

// errProductID rejects product ids that are not whole numbers.
var errProductID = errors.New("product_id must be a whole number")

// stringArg reads an optional string argument through the input sanitizer.
func (s *Server) stringArg(args map[string]interface{}, key string) (string, error) {
	raw, _ := args[key].(string)
	if raw == "" {
		return "", nil
	}
	clean, err := runner.SanitizeInputLimit(raw, s.maxInput)
	if err != nil {
		return "", fmt.Errorf("%s rejected: %w", key, err)
	}
	return clean, nil
}

func (s *Server) intentFromArgs(args map[string]interface{}) (domain.Intent, error) {
	typ, err := s.stringArg(args, "type")
	if err != nil {
		return domain.Intent{}, err
	}
	intent := domain.Intent{Type: domain.IntentType(strings.ToUpper(typ))}

	switch v := args["product_id"].(type) {
	case float64:
		if v != math.Trunc(v) {
			return domain.Intent{}, fmt.Errorf("%w: %v", errProductID, v)
		}
		intent.ProductID = int(v)
	case int:
		intent.ProductID = v
	}

	page, err := s.stringArg(args, "page")
	if err != nil {
		return domain.Intent{}, err
	}
	if page != "" {
		p, err := domain.ParsePage(page)
		if err != nil {
			return domain.Intent{}, err
		}
		intent.Page = p
	}

	if err := intent.Validate(); err != nil {
		return domain.Intent{}, err
	}
	return intent, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(catalogURI, "Plant Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(catalogURI, s.sessions.Engine().Catalog().Categories())
	})

	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Page Navigation Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(graphURI, s.sessions.Engine().Inspect())
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
