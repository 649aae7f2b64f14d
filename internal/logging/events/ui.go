package events

import "github.com/netops-tools/dnac-console/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type ConfigTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
	Config  = ConfigTracer{}
)

func (UITracer) MenuEnter(view, itemID, label string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"view":  view,
		"item":  itemID,
		"label": label,
	})
}

func (UITracer) MenuCursor(view string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"view": view, "cursor": cursor})
}

func (UITracer) MenuDisabled(itemID, capability string) {
	logging.Trace("menu.disabled", map[string]interface{}{"item": itemID, "requires": capability})
}

func (UITracer) Push(title string, depth int) {
	logging.Trace("view.push", map[string]interface{}{"title": title, "depth": depth})
}

func (UITracer) Pop(title string, depth int) {
	logging.Trace("view.pop", map[string]interface{}{"title": title, "depth": depth})
}

func (UITracer) Quit(reason string) {
	logging.Trace("ui.quit", map[string]interface{}{"reason": reason})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label, scriptsDir string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label, "scriptsDir": scriptsDir})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (ConfigTracer) EditStart(section, key string) {
	logging.Trace("config.edit", map[string]interface{}{"section": section, "key": key})
}

func (ConfigTracer) Commit(section, key string) {
	logging.Trace("config.commit", map[string]interface{}{"section": section, "key": key})
}

func (ConfigTracer) Discard(section, key string, err error) {
	payload := map[string]interface{}{"section": section, "key": key}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("config.discard", payload)
}

func (ConfigTracer) Save(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("config.save", payload)
}
