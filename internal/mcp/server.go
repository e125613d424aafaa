// Package mcp exposes the simulation engine over a stdio JSON-RPC loop so an
// MCP host can drive scenario runs. It owns all translation between transport
// semantics and engine errors; the engine itself never sees this layer.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"finsim-mcp/internal/config"
	"finsim-mcp/internal/recorder"
	"finsim-mcp/internal/simulation"

	"github.com/rs/zerolog/log"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server holds the state for the MCP server.
type Server struct {
	cfg    *config.AppConfig
	engine *simulation.Engine
	rec    recorder.Recorder
}

// NewServer creates a new MCP server around an already-wired engine.
func NewServer(cfg *config.AppConfig, engine *simulation.Engine, rec recorder.Recorder) *Server {
	return &Server{cfg: cfg, engine: engine, rec: rec}
}

// Serve starts the JSON-RPC loop over Stdio.
func (s *Server) Serve() error {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "finsim-mcp",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(os.Stdout, "%s\n", out)
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	var data interface{}
	var err error

	switch call.Name {
	case "list_scenarios":
		data = s.handleListScenarios()
	case "probe_profile":
		path, _ := call.Arguments["profile_path"].(string)
		data, err = s.handleProbeProfile(path)
	case "run_scenario":
		path, _ := call.Arguments["profile_path"].(string)
		name, _ := call.Arguments["scenario"].(string)
		iterations := intArg(call.Arguments, "iterations")
		data, err = s.handleRunScenario(path, name, iterations)
	case "run_batch":
		path, _ := call.Arguments["profile_path"].(string)
		iterations := intArg(call.Arguments, "iterations")
		data, err = s.handleRunBatch(path, iterations)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	text, err := s.formatResult(data)
	if err != nil {
		return nil, map[string]interface{}{"code": -32603, "message": fmt.Sprintf("marshal result: %v", err)}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": text,
			},
		},
	}, nil
}

func (s *Server) formatResult(data interface{}) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// intArg reads an integer tool argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}
