// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the site derivations to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/evanbei/nodegen/internal/build"
)

const portalFormatURI = "nodegen://portal-format"

// Server wraps the MCP server with nodegen tools.
type Server struct {
	mcp     *server.MCPServer
	builder *build.Builder
}

// New creates a new MCP server with all tools registered.
func New(b *build.Builder, version string) *Server {
	s := &Server{builder: b}

	s.mcp = server.NewMCPServer(
		"nodegen",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("derive_node",
		mcp.WithDescription("Derive the node descriptor (/.well-known/node.json) from the portal document "+
			"without writing it. Returns the descriptor as JSON."),
	), s.deriveNode)

	s.mcp.AddTool(mcp.NewTool("derive_jsonld",
		mcp.WithDescription("Derive the schema.org JSON-LD fragment embedded in the node page."),
	), s.deriveJSONLD)

	s.mcp.AddTool(mcp.NewTool("derive_checksums",
		mcp.WithDescription("Compute SHA-256 digests of the allowlisted published files without writing the manifest."),
	), s.deriveChecksums)

	s.mcp.AddTool(mcp.NewTool("build_site",
		mcp.WithDescription("Write the node descriptor, node page and checksum manifest. "+
			"Returns the list of files written."),
	), s.buildSite)

	s.mcp.AddTool(mcp.NewTool("verify_site",
		mcp.WithDescription("Check whether published files still match the portal document and the checksum manifest."),
	), s.verifySite)

	s.mcp.AddTool(mcp.NewTool("get_portal_contract",
		mcp.WithDescription("Returns the portal document format. "+
			"Call this before editing portal/portal.json."),
	), s.getPortalContract)

	s.mcp.AddResource(
		mcp.NewResource(portalFormatURI, "Portal Document Format",
			mcp.WithResourceDescription("Fields of portal/portal.json and how they are derived."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPortalFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func (s *Server) deriveNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, desc, err := s.builder.DeriveNode()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(desc), nil
}

func (s *Server) deriveJSONLD(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	frag, err := s.builder.DeriveJSONLD()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(frag), nil
}

func (s *Server) deriveChecksums(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := s.builder.DeriveChecksums()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(m), nil
}

func (s *Server) buildSite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	written, err := s.builder.All()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(written, "\n")), nil
}

func (s *Server) verifySite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.builder.Verify()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := jsonResult(report)
	res.IsError = !report.OK()
	return res, nil
}

func (s *Server) getPortalContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PortalFormatContract), nil
}

func (s *Server) readPortalFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      portalFormatURI,
			MIMEType: "text/markdown",
			Text:     PortalFormatContract,
		},
	}, nil
}
