package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	pathProp := map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
	maxDimProp := map[string]interface{}{
		"type":        "integer",
		"description": "Maximum processing raster dimension in pixels; larger images are downscaled. Default 150",
		"default":     150,
	}
	smoothProp := map[string]interface{}{
		"type":        "number",
		"description": "Gaussian blur radius applied to the mask before tracing; 0 disables. Use 1-2 for dithered or anti-aliased alpha edges",
		"default":     0,
	}

	return []Tool{
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format, and whether it has an alpha channel (needed for silhouette tracing).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "trace_outline",
			Description: "Trace the alpha-channel silhouette of an image into a closed vector outline. Returns the outline vertices, bounding box, and placement offset as JSON geometry.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"target_points": map[string]interface{}{
						"type":        "integer",
						"description": "Requested vertex count for the simplified outline (minimum 3). Sharp corners are always kept and may push the result above the target. Default 10",
						"default":     10,
					},
					"max_dimension": maxDimProp,
					"smooth_radius": smoothProp,
					"edge_offset": map[string]interface{}{
						"type":        "number",
						"description": "Outward offset per vertex in source pixels, compensating for stroke width. Default 0.5",
						"default":     0.5,
					},
					"dest_scale_x": map[string]interface{}{
						"type":        "number",
						"description": "Horizontal scale from source pixels to destination units. Default 1.0",
						"default":     1.0,
					},
					"dest_scale_y": map[string]interface{}{
						"type":        "number",
						"description": "Vertical scale from source pixels to destination units. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "trace_svg",
			Description: "Trace the alpha-channel silhouette of an image and return a complete styled SVG document for the outline.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"target_points": map[string]interface{}{
						"type":        "integer",
						"description": "Requested vertex count for the simplified outline (minimum 3). Default 10",
						"default":     10,
					},
					"max_dimension": maxDimProp,
					"smooth_radius": smoothProp,
					"stroke_color": map[string]interface{}{
						"type":        "string",
						"description": "Stroke color as #RRGGBB. When omitted it is derived from the fill, or near-black for unfilled outlines",
					},
					"stroke_width": map[string]interface{}{
						"type":        "number",
						"description": "Stroke width in destination units. Default 2",
						"default":     2,
					},
					"fill_color": map[string]interface{}{
						"type":        "string",
						"description": "Fill color as #RRGGBB, or \"none\". Default none",
					},
					"fill_opacity": map[string]interface{}{
						"type":        "number",
						"description": "Fill opacity from 0 to 1. Default 1",
						"default":     1,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "edge_map",
			Description: "Run only the boundary-pixel detection stage and return the detected edge pixels as a base64 PNG (white on black). Useful for debugging masks that fail to trace.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":          pathProp,
					"max_dimension": maxDimProp,
					"smooth_radius": smoothProp,
				},
				"required": []string{"path"},
			},
		},
	}
}
