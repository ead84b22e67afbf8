package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("compose_board",
		mcp.WithPromptDescription("Guide through collecting images and notes for a mood board on a theme"),
		mcp.WithArgument("theme",
			mcp.ArgumentDescription("Theme or mood the board should capture"),
			mcp.RequiredArgument(),
		),
	), s.handleComposeBoardPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("tidy_board",
		mcp.WithPromptDescription("Review the current board and tidy its layout"),
	), s.handleTidyBoardPrompt)
}

func (s *Server) handleComposeBoardPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	theme := req.Params.Arguments["theme"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Compose a mood board for: %s", theme),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a mood board around "%s". Follow these steps:

1. Use list_items to see what is already pinned
2. Add a title note with add_text_item, e.g. "%s"
3. Pin 4-8 images that fit the theme with add_image_item (direct image URLs only)
4. Add short text notes for colours, textures or keywords next to related images
5. Finish with arrange_items if the board looks cluttered

Leave positions out to let the board pick free spots automatically.`, theme, theme),
				},
			},
		},
	}, nil
}

func (s *Server) handleTidyBoardPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Tidy the mood board",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: `Read the moodboard://board resource and tidy it:

1. Look for items stacked on top of each other or far outside the rest
2. Group related notes next to their images using move_item
3. Use arrange_items only if a full re-layout is better than small moves

Never call clear_board unless explicitly asked.`,
				},
			},
		},
	}, nil
}
