package cli

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Examples  []string
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "roadmap",
		Operation: "import",
		ShortDesc: "Import a roadmap from a JSON file",
		LongDesc:  "Imports a roadmap from a JSON file and selects it. Accepts full roadmap documents ('topics') and plain technology lists ('technologies'). Imported topics always start as not-started.",
		Syntax:    "roadmap import <filename>",
		Arguments: []string{"filename: The JSON file to import"},
		Examples:  []string{"roadmap import frontend.json"},
	},
	{
		Scope:     "roadmap",
		Operation: "export",
		ShortDesc: "Export the current roadmap to a JSON file",
		LongDesc:  "Exports the current roadmap, including notes and progress, as formatted JSON. Without a filename the file is written to the export folder as roadmap-<id>-<date>.json.",
		Syntax:    "roadmap export [filename]",
		Arguments: []string{"filename: (Optional) The file to write"},
		Examples:  []string{"roadmap export", "roadmap export my-roadmap.json"},
	},
	{
		Scope:     "roadmap",
		Operation: "select",
		ShortDesc: "Select a stored roadmap",
		LongDesc:  "Loads a stored roadmap by id and makes it the current roadmap.",
		Syntax:    "roadmap select <roadmap_id>",
		Arguments: []string{"roadmap_id: The id of the roadmap to select"},
		Examples:  []string{"roadmap select 4f7c2c1e-8b2a-4a7e-9c3d-2f1e0a9b8c7d"},
	},
	{
		Scope:     "roadmap",
		Operation: "deselect",
		ShortDesc: "Deselect the current roadmap",
		LongDesc:  "Clears the current roadmap selection. The roadmap itself stays stored.",
		Syntax:    "roadmap deselect",
		Examples:  []string{"roadmap deselect"},
	},
	{
		Scope:     "roadmap",
		Operation: "list",
		ShortDesc: "List stored roadmaps",
		LongDesc:  "Lists all stored roadmaps with their completion percentage. The current roadmap is marked with an asterisk.",
		Syntax:    "roadmap list",
		Examples:  []string{"roadmap list"},
	},
	{
		Scope:     "roadmap",
		Operation: "delete",
		ShortDesc: "Delete a stored roadmap",
		LongDesc:  "Deletes a stored roadmap by id. Deleting the current roadmap deselects it.",
		Syntax:    "roadmap delete <roadmap_id>",
		Arguments: []string{"roadmap_id: The id of the roadmap to delete"},
		Examples:  []string{"roadmap delete 4f7c2c1e-8b2a-4a7e-9c3d-2f1e0a9b8c7d"},
	},
	{
		Scope:     "roadmap",
		Operation: "progress",
		ShortDesc: "Show progress of the current roadmap",
		LongDesc:  "Shows the completion percentage and status counts of the current roadmap.",
		Syntax:    "roadmap progress",
		Examples:  []string{"roadmap progress"},
	},
	{
		Scope:     "roadmap",
		Operation: "stats",
		ShortDesc: "Show statistics for the current roadmap",
		LongDesc:  "Shows status counts, optionally grouped by category or difficulty. Topics without the grouping field land in an 'uncategorized' or 'unspecified' bucket.",
		Syntax:    "roadmap stats [category|difficulty]",
		Arguments: []string{"grouping: (Optional) 'category' or 'difficulty'"},
		Examples:  []string{"roadmap stats", "roadmap stats category"},
	},
	{
		Scope:     "topic",
		Operation: "list",
		ShortDesc: "List topics of the current roadmap",
		LongDesc:  "Lists the topics of the current roadmap in display order with status, target date and completion date.",
		Syntax:    "topic list",
		Examples:  []string{"topic list"},
	},
	{
		Scope:     "topic",
		Operation: "add",
		ShortDesc: "Add a topic to the current roadmap",
		LongDesc:  "Adds a new topic. Title (max 100 characters) and description (max 1000 characters) are required; category defaults to 'other' and difficulty to 'beginner'.",
		Syntax:    "topic add <title> <description> [category] [difficulty]",
		Arguments: []string{
			"title: The topic title",
			"description: The topic description",
			"category: (Optional) Free-form category",
			"difficulty: (Optional) beginner, intermediate or advanced",
		},
		Examples: []string{"topic add \"Go generics\" \"Type parameters and constraints\" language intermediate"},
	},
	{
		Scope:     "topic",
		Operation: "status",
		ShortDesc: "Change a topic's status",
		LongDesc:  "Sets a topic's status. Completing a topic stamps today's date as its completion date; leaving completed clears it.",
		Syntax:    "topic status <topic_id> <not-started|in-progress|completed>",
		Arguments: []string{"topic_id: The id of the topic", "status: The new status"},
		Examples:  []string{"topic status 12 completed"},
	},
	{
		Scope:     "topic",
		Operation: "notes",
		ShortDesc: "Update a topic's notes",
		LongDesc:  "Sets a topic's notes and optionally its target date (YYYY-MM-DD).",
		Syntax:    "topic notes <topic_id> <notes> [target_date]",
		Arguments: []string{"topic_id: The id of the topic", "notes: The notes text", "target_date: (Optional) Desired completion date"},
		Examples:  []string{"topic notes 12 \"Read the docs first\" 2026-09-15"},
	},
	{
		Scope:     "topic",
		Operation: "complete-all",
		ShortDesc: "Mark every topic completed",
		LongDesc:  "Marks every topic completed. Topics completed earlier keep their original completion date.",
		Syntax:    "topic complete-all",
		Examples:  []string{"topic complete-all"},
	},
	{
		Scope:     "topic",
		Operation: "reset-all",
		ShortDesc: "Reset every topic to not-started",
		LongDesc:  "Resets every topic to not-started and clears all completion dates.",
		Syntax:    "topic reset-all",
		Examples:  []string{"topic reset-all"},
	},
	{
		Scope:     "topic",
		Operation: "invert",
		ShortDesc: "Swap completed and not-started topics",
		LongDesc:  "Swaps completed and not-started statuses. Topics in progress are left unchanged.",
		Syntax:    "topic invert",
		Examples:  []string{"topic invert"},
	},
	{
		Scope:     "topic",
		Operation: "random",
		ShortDesc: "Pick a random topic to work on next",
		LongDesc:  "Picks a random not-yet-completed topic, marks it in progress and sets a target date one week out if none is set.",
		Syntax:    "topic random",
		Examples:  []string{"topic random"},
	},
}
