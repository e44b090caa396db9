package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/report"
)

// DefaultStepLimit bounds every run requested over MCP.
const DefaultStepLimit = 1_000_000

// RunResponse aligns with the HTTP run response so both adapters report
// the same structure.
type RunResponse struct {
	Status     domain.RunStatus `json:"status" jsonschema_description:"running, halted or failed"`
	State      domain.StateKey  `json:"state" jsonschema_description:"State the machine stopped in"`
	Steps      int              `json:"steps" jsonschema_description:"Number of transitions applied"`
	Head       int              `json:"head" jsonschema_description:"Head position when the run stopped"`
	Tape       []domain.Cell    `json:"tape" jsonschema_description:"Touched cells in ascending position order"`
	TapeString string           `json:"tape_string" jsonschema_description:"Symbols of the touched cells, concatenated"`
	Error      string           `json:"error,omitempty" jsonschema_description:"Why the run did not halt, if it did not"`
}

// Server exposes machine execution as MCP tools. Every call builds a fresh
// machine from the supplied description.
type Server struct {
	mcpServer *server.MCPServer
	stepLimit int
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStepLimit caps the steps of every run.
func WithStepLimit(n int) Option {
	return func(s *Server) {
		s.stepLimit = n
	}
}

// WithLifecycleHooks attaches hooks to every machine the server runs.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithLogger sets the logger. It must not write to stdout when serving stdio.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
		stepLimit: DefaultStepLimit,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	definition := mcp.WithString("definition", mcp.Required(),
		mcp.Description("The machine description, in the format named by 'format'"))
	format := mcp.WithString("format",
		mcp.Description("Description format: text (line-oriented), yaml or json. Defaults to text."),
		mcp.Enum(string(loader.FormatText), string(loader.FormatYAML), string(loader.FormatJSON)),
	)

	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a deterministic Turing machine until it halts, fails on an undefined transition or exhausts the step limit."),
		definition,
		format,
		mcp.WithString("input", mcp.Description("Initial tape, one character per symbol (0-9, then a-z for 10-35). Overrides the description's input.")),
		mcp.WithNumber("step_limit", mcp.Description("Maximum number of steps (capped by the server)")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: describe_machine
	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Describe the alphabet, states, start/final states and transitions of a machine as markdown."),
		definition,
		format,
	), s.handleDescribe)

	// TOOL: render_graph
	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render the machine's state diagram as a Mermaid flowchart."),
		definition,
		format,
	), s.handleGraph)
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	def, err := parseArgs(args)
	if err != nil {
		return RunResponse{}, err
	}

	if input, ok := args["input"].(string); ok {
		symbols, err := loader.ParseInput(input)
		if err != nil {
			return RunResponse{}, err
		}
		def.Input = symbols
	}

	limit := s.stepLimit
	if n, ok := args["step_limit"].(float64); ok {
		limit = lowerLimit(limit, n)
	}

	m, err := turing.FromDefinition(def,
		turing.WithStepLimit(limit),
		turing.WithLifecycleHooks(s.hooks),
		turing.WithLogger(s.logger),
	)
	if err != nil {
		return RunResponse{}, fmt.Errorf("invalid machine: %w", err)
	}

	res, err := m.Run(ctx, def.Input)
	if res == nil {
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}

	resp := RunResponse{
		Status:     res.Status,
		State:      res.State,
		Steps:      res.Steps,
		Head:       res.Head,
		Tape:       res.Tape,
		TapeString: report.TapeString(res.Tape),
	}
	if err != nil {
		resp.Error = err.Error()
		s.logger.Warn("MCP Run: machine did not halt", "error", err, "status", res.Status)
	}
	return resp, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := s.machine(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.Info(m.Describe())), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := s.machine(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(m.Describe(), nil)), nil
}

func (s *Server) machine(request mcp.CallToolRequest) (*turing.Machine, error) {
	def, err := parseArgs(request.GetArguments())
	if err != nil {
		return nil, err
	}
	m, err := turing.FromDefinition(def, turing.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("invalid machine: %w", err)
	}
	return m, nil
}

func parseArgs(args map[string]any) (*domain.Definition, error) {
	source, _ := args["definition"].(string)
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("definition is required")
	}

	name, _ := args["format"].(string)
	format, err := loader.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return loader.Parse([]byte(source), format)
}

// lowerLimit applies a requested step limit. It can only tighten the server
// cap; values that are not a positive int are ignored.
func lowerLimit(limit int, n float64) int {
	if !(n >= 1 && n < float64(math.MaxInt)) {
		return limit
	}
	if limit > 0 && n >= float64(limit) {
		return limit
	}
	return int(n)
}
