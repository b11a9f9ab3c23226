package ossim

// loadedModule is a named, optionally-removable unit tracked by the
// mutation API's load_module/unload_module pair. The engine does not
// interpret a module's name; it is opaque bookkeeping for the external
// console, mirroring how the engine treats architecture names as strings it
// merely validates against a known set.
type loadedModule struct {
	ID        string
	Name      string
	Removable bool
}

// LoadModule registers a module under id. Re-registering an existing id
// overwrites it.
func (e *Engine) LoadModule(id, name string, removable bool) {
	e.modules[id] = loadedModule{ID: id, Name: name, Removable: removable}
	e.logLayerFlow("module %q (%s) loaded", id, name)
}

// UnloadModule removes a previously-loaded module. Unloading an unknown or
// non-removable module is an InvalidMutation: logged, state unchanged.
func (e *Engine) UnloadModule(id string) error {
	m, ok := e.modules[id]
	if !ok || !m.Removable {
		e.logLayerFlow("unload of module %q rejected (invalid mutation)", id)
		return ErrInvalidMutation
	}
	delete(e.modules, id)
	e.logLayerFlow("module %q unloaded", id)
	return nil
}

// ModuleInfo is a read-only view of a loaded module.
type ModuleInfo struct {
	ID        string
	Name      string
	Removable bool
}

// Modules returns a snapshot of every currently loaded module.
func (e *Engine) Modules() []ModuleInfo {
	out := make([]ModuleInfo, 0, len(e.modules))
	for _, m := range e.modules {
		out = append(out, ModuleInfo{ID: m.ID, Name: m.Name, Removable: m.Removable})
	}
	return out
}
