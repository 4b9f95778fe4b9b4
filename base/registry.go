package base

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/MobRulesGames/isopick/logging"
)

// Definitions follow this format
//   type Foo struct {
//     Defname string
//     *FooDef
//     FooInst
//   }
// A Foo is something for which there can be multiple instances (such as a
// tilemap layer), FooDef is the data that is constant between all such
// instances, and FooInst is the data that makes each instance unique
// (placement, layer, ...).
//
// Defs live in a registry
//   foo_registry map[string]*FooDef
// keyed by the def's Name field, so that a Foo can be made just by supplying
// the Defname. Registries are filled from files with RegisterAllObjectsInDir.
//
// Tags:
// A pointer field tagged `registry:"loadfrom-foo"` is filled in from the "foo"
// registry when the containing object is loaded, using the Defname of the
// pointed-to object.

var ErrUnknownRegistry = errors.New("unknown registry")
var ErrUnknownDef = errors.New("no def with that name")

var (
	registry_registry map[string]reflect.Value
)

func init() {
	registry_registry = make(map[string]reflect.Value)
}

func RemoveRegistry(name string) {
	delete(registry_registry, name)
}

// Registers a registry which must be a map from string to
// pointer-to-something with a string Name field. Misuse is a programming
// error and panics.
func RegisterRegistry(name string, registry interface{}) {
	if strings.Contains(name, " ") {
		panic(fmt.Errorf("registry name %q cannot contain spaces", name))
	}
	mr := reflect.ValueOf(registry)
	if mr.Kind() != reflect.Map {
		panic(fmt.Errorf("registries must be map[string]*struct, got %v", mr.Kind()))
	}
	if mr.Type().Key().Kind() != reflect.String {
		panic(fmt.Errorf("registry must be a map that uses strings as keys, got %v", mr.Type().Key()))
	}
	if mr.Type().Elem().Kind() != reflect.Pointer {
		panic(fmt.Errorf("registry must be a map that uses pointers as values, got %v", mr.Type().Elem()))
	}
	if field, ok := mr.Type().Elem().Elem().FieldByName("Name"); !ok || field.Type.Kind() != reflect.String {
		panic(fmt.Errorf("registry %q must store values that have a Name field of type string", name))
	}
	if _, ok := registry_registry[name]; ok {
		panic(fmt.Errorf("cannot register two registries with the same name %q", name))
	}
	registry_registry[name] = mr
}

// Drops every def in the named registry, for reloading from disk.
func ClearRegistry(name string) error {
	reg, ok := registry_registry[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegistry, name)
	}
	reg.Clear()
	return nil
}

// Registers object in the named registry which must have already been
// registered through RegisterRegistry(). object must be a pointer of the type
// appropriate for the named registry.
func RegisterObject(registry_name string, object interface{}) error {
	reg, ok := registry_registry[registry_name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegistry, registry_name)
	}

	obj_val := reflect.ValueOf(object)
	if obj_val.Kind() != reflect.Pointer {
		return fmt.Errorf("can only register objects as pointers, got %v", obj_val.Kind())
	}
	if obj_val.Elem().Type() != reg.Type().Elem().Elem() {
		return fmt.Errorf("registry %q stores %v, not %v", registry_name, reg.Type().Elem().Elem(), obj_val.Elem().Type())
	}

	// Registries only store values with a string Name field so this lookup
	// can't fail.
	object_name := obj_val.Elem().FieldByName("Name").String()
	if object_name == "" {
		return fmt.Errorf("can't register a %v without a name", obj_val.Elem().Type())
	}
	if reg.MapIndex(reflect.ValueOf(object_name)).IsValid() {
		return fmt.Errorf("registry %q already has an entry named %q", registry_name, object_name)
	}
	reg.SetMapIndex(reflect.ValueOf(object_name), obj_val)
	return nil
}

// Loads an object using the specified registry. object should have a field
// called Defname of type string. This name will be used to find the def in the
// registry. The object should also embed a field of this type which the value
// in the registry will be assigned to.
func GetObject(registry_name string, object interface{}) error {
	reg, ok := registry_registry[registry_name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegistry, registry_name)
	}

	object_val := reflect.ValueOf(object)
	if object_val.Kind() != reflect.Pointer {
		return fmt.Errorf("tried to load into a %v, not a pointer", object_val.Kind())
	}

	object_name := object_val.Elem().FieldByName("Defname")
	if !object_name.IsValid() || object_name.Kind() != reflect.String {
		return fmt.Errorf("%v has no Defname field", object_val.Elem().Type())
	}

	cur_val := reg.MapIndex(object_name)
	if !cur_val.IsValid() {
		return fmt.Errorf("%w: %q in registry %q", ErrUnknownDef, object_name.String(), registry_name)
	}
	fieldName := cur_val.Elem().Type().Name()
	field := object_val.Elem().FieldByName(fieldName)
	if !field.IsValid() {
		return fmt.Errorf("%v does not embed a %v", object_val.Elem().Type(), cur_val.Type())
	}
	if !field.CanSet() {
		panic(fmt.Errorf("can't set value through field named %q", fieldName))
	}
	field.Set(cur_val)
	return nil
}

// Returns a sorted list of all names in the specified registry.
func GetAllNamesInRegistry(registry_name string) []string {
	reg, ok := registry_registry[registry_name]
	if !ok {
		logging.Error("Unknown registry", "registry_name", registry_name)
		return nil
	}
	var names []string
	for _, key := range reg.MapKeys() {
		names = append(names, key.String())
	}
	sort.Strings(names)
	return names
}

// Loads target from path and fills in any `registry:"loadfrom-..."` fields.
// Does NOT register the object in any registry.
func LoadAndProcessObject(path, format string, target interface{}) error {
	logging.Debug("LoadAndProcessObject", "path", path)
	var err error
	switch format {
	case "yaml":
		err = LoadYaml(path, target)

	case "gob":
		err = LoadGob(path, target)

	default:
		panic(fmt.Errorf("Unknown format, %q", format))
	}
	if err != nil {
		return err
	}

	return ProcessObject(reflect.ValueOf(target), "")
}

// Recursively decends through a value's type hierarchy and applies processing
// according to any tags that have been set on those types.
func ProcessObject(val reflect.Value, tag string) error {
	switch val.Type().Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			return nil
		}
		loadfrom_tag := "loadfrom-"
		if strings.HasPrefix(tag, loadfrom_tag) {
			source := tag[len(loadfrom_tag):]
			logging.Trace("ProcessObject calling GetObject", "registry", source)
			if err := GetObject(source, val.Interface()); err != nil {
				return err
			}
		}
		return ProcessObject(val.Elem(), tag)

	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			if !val.Type().Field(i).IsExported() {
				continue
			}
			if err := ProcessObject(val.Field(i), val.Type().Field(i).Tag.Get("registry")); err != nil {
				return err
			}
		}

	case reflect.Array, reflect.Slice:
		for i := 0; i < val.Len(); i++ {
			if err := ProcessObject(val.Index(i), tag); err != nil {
				return err
			}
		}
	}
	return nil
}

// Walks recursively through the specified directory, loads all files with
// the specified suffix and registers them in the specified registry. format
// should either be "yaml" or "gob". Files begining with '.' are ignored.
// Files that fail to load are logged and skipped; their errors are joined
// into the returned error.
func RegisterAllObjectsInDir(registry_name, dir, suffix, format string) error {
	logging.Info("Registering directory", "dir", dir)
	reg, ok := registry_registry[registry_name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegistry, registry_name)
	}
	var errs []error
	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking directory: %w", err)
		}
		if strings.HasPrefix(entry.Name(), ".") && path != dir {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			return nil
		}
		target := reflect.New(reg.Type().Elem().Elem())
		err = LoadAndProcessObject(path, format, target.Interface())
		if err == nil {
			err = RegisterObject(registry_name, target.Interface())
		}
		if err != nil {
			logging.Error("Error loading file", "path", path, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	logging.Info("Completed directory", "dir", dir)
	return errors.Join(errs...)
}
