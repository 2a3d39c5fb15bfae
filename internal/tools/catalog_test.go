package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 5)

	names := make([]string, len(catalog))
	for i, tool := range catalog {
		names[i] = tool.Name
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.Equal(t, "object", tool.InputSchema["type"], tool.Name)
	}
	assert.Equal(t, []string{ToolAddTask, ToolListTasks, ToolUpdateTask, ToolCompleteTask, ToolDeleteTask}, names)
}

func TestCatalogRequiredFields(t *testing.T) {
	required := map[string][]string{
		ToolAddTask:      {"title"},
		ToolUpdateTask:   {"task_id"},
		ToolCompleteTask: {"task_id"},
		ToolDeleteTask:   {"task_id"},
	}

	for _, tool := range Catalog() {
		got, _ := tool.InputSchema["required"].([]string)
		want, ok := required[tool.Name]
		if !ok {
			// list_tasks takes only optional filters
			assert.Empty(t, got, tool.Name)
			continue
		}
		assert.Equal(t, want, got, tool.Name)
	}
}
