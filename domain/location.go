package domain

import (
	"encoding/json"
	"fmt"
)

// Location is the canonical identity of a ranked entity.
//
// Only three shapes exist: file, file+class, and file+class+method. The
// fields are unexported so a Location can only be built through the
// constructors below, which makes partial shapes such as a method without
// a class unrepresentable.
type Location struct {
	kind       EntityKind
	filePath   string
	className  string
	methodName string
}

// NewFileLocation builds a file-only location
func NewFileLocation(filePath string) (Location, error) {
	if filePath == "" {
		return Location{}, NewArgumentError("file location requires a file path")
	}
	return Location{kind: KindFile, filePath: filePath}, nil
}

// NewClassLocation builds a file+class location
func NewClassLocation(filePath, className string) (Location, error) {
	if filePath == "" || className == "" {
		return Location{}, NewArgumentError("class location requires a file path and a class name")
	}
	return Location{kind: KindClass, filePath: filePath, className: className}, nil
}

// NewMethodLocation builds a file+class+method location
func NewMethodLocation(filePath, className, methodName string) (Location, error) {
	if filePath == "" || className == "" || methodName == "" {
		return Location{}, NewArgumentError("method location requires a file path, a class name and a method name")
	}
	return Location{kind: KindMethod, filePath: filePath, className: className, methodName: methodName}, nil
}

// Kind returns which of the three shapes the location has
func (l Location) Kind() EntityKind { return l.kind }

// FilePath returns the file the entity lives in
func (l Location) FilePath() string { return l.filePath }

// ClassName returns the class name; ok is false for file locations
func (l Location) ClassName() (string, bool) {
	return l.className, l.kind == KindClass || l.kind == KindMethod
}

// MethodName returns the method name; ok is false unless this is a method location
func (l Location) MethodName() (string, bool) {
	return l.methodName, l.kind == KindMethod
}

// String renders the location for text reports
func (l Location) String() string {
	switch l.kind {
	case KindFile:
		return l.filePath
	case KindClass:
		return fmt.Sprintf("%s (%s)", l.className, l.filePath)
	case KindMethod:
		return fmt.Sprintf("%s (%s)", MethodIdentifier(l.className, l.methodName), l.filePath)
	default:
		return ""
	}
}

// locationDoc is the serialized form; absent parts are null
type locationDoc struct {
	FilePath   string  `json:"file_path" yaml:"file_path"`
	ClassName  *string `json:"class_name" yaml:"class_name"`
	MethodName *string `json:"method_name" yaml:"method_name"`
}

func (l Location) doc() locationDoc {
	d := locationDoc{FilePath: l.filePath}
	if name, ok := l.ClassName(); ok {
		d.ClassName = &name
	}
	if name, ok := l.MethodName(); ok {
		d.MethodName = &name
	}
	return d
}

// MarshalJSON renders {file_path, class_name|null, method_name|null}
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.doc())
}

// UnmarshalJSON restores a location, rejecting invalid shapes
func (l *Location) UnmarshalJSON(data []byte) error {
	var d locationDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	loc, err := locationFromDoc(d)
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

// MarshalYAML renders the same shape as MarshalJSON
func (l Location) MarshalYAML() (interface{}, error) {
	return l.doc(), nil
}

func locationFromDoc(d locationDoc) (Location, error) {
	switch {
	case d.ClassName == nil && d.MethodName == nil:
		return NewFileLocation(d.FilePath)
	case d.ClassName != nil && d.MethodName == nil:
		return NewClassLocation(d.FilePath, *d.ClassName)
	case d.ClassName != nil && d.MethodName != nil:
		return NewMethodLocation(d.FilePath, *d.ClassName, *d.MethodName)
	default:
		return Location{}, NewArgumentError("method location requires a class name")
	}
}
