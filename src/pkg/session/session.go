// Package session dispatches parsed commands to the data managers. The
// application is single-user and single-tab by design, so a single session is
// the only mutating actor.
package session

import (
	"context"
	"errors"

	"techtracker/local-app/src/pkg/data"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session holds the data manager and the command dispatch table.
type Session struct {
	DataManager     *data.DataManager
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
}

// NewSession creates a new Session instance
func NewSession(dataManager *data.DataManager, logger *log.Logger) *Session {
	s := &Session{
		DataManager: dataManager,
		logger:      logger,
	}
	s.initCommandHandlers()
	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"roadmap": initRoadmapCommandHandlers(),
		"topic":   initTopicCommandHandlers(),
	}
}

// CommandRun executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Running command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "args": cmd.Args})

	scopeHandlers, ok := s.commandHandlers[cmd.Scope]
	if !ok {
		s.logger.Warn(ctx, "Invalid command scope", log.Fields{"scope": cmd.Scope})
		return nil, errors.New("invalid command scope")
	}

	handler, ok := scopeHandlers[cmd.Operation]
	if !ok {
		s.logger.Warn(ctx, "Invalid command operation", log.Fields{"operation": cmd.Operation})
		return nil, errors.New("invalid command operation")
	}

	result, err := handler(s, cmd)
	if err != nil {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"error": err})
	}
	return result, err
}

// initRoadmapCommandHandlers initializes roadmap command handlers
func initRoadmapCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"import":   handleRoadmapImport,
		"export":   handleRoadmapExport,
		"select":   handleRoadmapSelect,
		"deselect": handleRoadmapDeselect,
		"list":     handleRoadmapList,
		"delete":   handleRoadmapDelete,
		"progress": handleRoadmapProgress,
		"stats":    handleRoadmapStats,
	}
}

// initTopicCommandHandlers initializes topic command handlers
func initTopicCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"list":         handleTopicList,
		"add":          handleTopicAdd,
		"status":       handleTopicStatus,
		"notes":        handleTopicNotes,
		"complete-all": handleTopicCompleteAll,
		"reset-all":    handleTopicResetAll,
		"invert":       handleTopicInvert,
		"random":       handleTopicRandom,
	}
}
