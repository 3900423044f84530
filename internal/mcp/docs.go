package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `cookbook is a registry of recipes and ingredients.

- Ingredients have a cook time per unit. Recipes list required items by name and quantity.
- Names are unique across both kinds, matched exactly, and entries never change once stored.
- Use parse_name to turn free text into a canonical name before storing it.
- Store leaves first: get_summary fails if any required item is missing.
- get_summary multiplies quantities down the tree and sums cook time over base ingredients.

Docs: cookbook://docs/index
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "cookbook://docs/index",
		Name:        "docs_index",
		Title:       "cookbook docs",
		Description: "Entry rules, summary semantics, and error codes.",
		Content: `# cookbook

## Entries

- ` + "`type`" + ` is ` + "`recipe`" + ` or ` + "`ingredient`" + `.
- Ingredients carry ` + "`cookTime`" + ` (>= 0). Recipes carry ` + "`requiredItems`" + `.
- Required item quantities are positive and item names are distinct within a recipe.
- Required items may name entries that do not exist yet.

## Summaries

A summary of recipe R lists every base ingredient reachable from R with its
total quantity, in first-seen order, and the total cook time
(sum of quantity x cookTime). A recipe that requires itself, directly or not,
is rejected, as is a chain deeper than the configured limit.

## Error codes

- ` + "`INPUT_ERROR`" + `: the name has no letters, or the request is malformed.
- ` + "`VALIDATION_ERROR`" + `: the entry breaks one of the rules above.
- ` + "`LOOKUP_ERROR`" + `: the recipe or one of its dependencies is missing.
- ` + "`GRAPH_ERROR`" + `: cycle, depth limit, or quantity overflow.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, _ *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      doc.URI,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
