// In file: internal/tools/catalog.go
package tools

// Name identifies one of the gateway's built-in tools. The set is closed:
// every Name in the catalog has exactly one executor branch.
type Name string

const (
	InvertMatrix   Name = "invert_matrix"
	SolveHanoi     Name = "solve_hanoi"
	SearchInternet Name = "search_internet"
	GetLocalTime   Name = "get_local_time"
	GetCityTime    Name = "get_city_time"
	GetWeather     Name = "get_weather"
)

// Names lists every tool in catalog order.
var Names = []Name{InvertMatrix, SolveHanoi, SearchInternet, GetLocalTime, GetCityTime, GetWeather}

var catalog = []Tool{
	NewFunctionTool(
		InvertMatrix,
		"Invert a square matrix given as a list of lists.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"matrix": {
					Type:  "array",
					Items: &JSONSchema{Type: "array", Items: &JSONSchema{Type: "number"}},
				},
			},
			Required: []string{"matrix"},
		},
	),
	NewFunctionTool(
		SolveHanoi,
		"Solve the Towers of Hanoi puzzle for N disks.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"n": {Type: "integer", Description: "Number of disks"},
			},
			Required: []string{"n"},
		},
	),
	NewFunctionTool(
		SearchInternet,
		"Search the internet for real-time information.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"query": {Type: "string", Description: "Search query"},
			},
			Required: []string{"query"},
		},
	),
	NewFunctionTool(
		GetLocalTime,
		"Get the current system date and time (server local time).",
		JSONSchema{Type: "object", Properties: map[string]*JSONSchema{}},
	),
	NewFunctionTool(
		GetCityTime,
		"Get the current date and time for a specific city.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"city": {Type: "string", Description: "The name of the city (e.g., 'Tokyo', 'New York')."},
			},
			Required: []string{"city"},
		},
	),
	NewFunctionTool(
		GetWeather,
		"Get current weather for a specific city using Open-Meteo.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"city": {Type: "string", Description: "The name of the city to get weather for."},
			},
			Required: []string{"city"},
		},
	),
}

// ListTools returns the catalog in a stable order. The returned slice is a
// copy; the schemas it points to are shared and must not be mutated.
func ListTools() []Tool {
	out := make([]Tool, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds the catalog entry for name.
func Lookup(name string) (Tool, bool) {
	for _, t := range catalog {
		if t.Function.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
