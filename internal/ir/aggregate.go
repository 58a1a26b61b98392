package ir

const (
	QueryTypeName        = "Query"
	SubscriptionTypeName = "Subscription"
)

// Aggregate collects the types and services of every input file. Insertion
// order is rendering order.
type Aggregate struct {
	Enums    []*EnumType
	Objects  []*ObjectType
	Services []*Service

	// GraphQL type name -> declaring proto full name
	names map[string]string
}

func NewAggregate() *Aggregate {
	return &Aggregate{names: map[string]string{
		QueryTypeName:        "the Query root",
		SubscriptionTypeName: "the Subscription root",
	}}
}

// AddObject appends o and claims both its name and its input name.
func (a *Aggregate) AddObject(o *ObjectType) error {
	if err := a.claim(o.FullName, o.Name, o.Name+"Input"); err != nil {
		return err
	}
	a.Objects = append(a.Objects, o)
	return nil
}

func (a *Aggregate) AddEnum(e *EnumType) error {
	if err := a.claim(e.FullName, e.Name); err != nil {
		return err
	}
	a.Enums = append(a.Enums, e)
	return nil
}

// AddService appends s and claims its name, which names the type-defs
// constant, and the name of its GraphQL type.
func (a *Aggregate) AddService(s *Service) error {
	if err := a.claim(s.FullName, s.Name, s.TypeName()); err != nil {
		return err
	}
	a.Services = append(a.Services, s)
	return nil
}

func (a *Aggregate) claim(fullName string, names ...string) error {
	for _, name := range names {
		if existing, ok := a.names[name]; ok {
			return &DuplicateNameError{Name: name, FullName: fullName, Existing: existing}
		}
	}
	for _, name := range names {
		a.names[name] = fullName
	}
	return nil
}

func (a *Aggregate) HasStreaming() bool {
	for _, s := range a.Services {
		if s.HasStreaming() {
			return true
		}
	}
	return false
}

// StreamingServices returns the services with at least one server-streaming
// method.
func (a *Aggregate) StreamingServices() []*Service {
	var out []*Service
	for _, s := range a.Services {
		if s.HasStreaming() {
			out = append(out, s)
		}
	}
	return out
}

// Query synthesizes the query root, one field per service. It returns nil
// when there are no services.
func (a *Aggregate) Query() *ObjectType {
	return rootType(QueryTypeName, a.Services)
}

// Subscription synthesizes the subscription root, one field per service with
// streaming methods. It returns nil when nothing streams.
func (a *Aggregate) Subscription() *ObjectType {
	return rootType(SubscriptionTypeName, a.StreamingServices())
}

func rootType(name string, services []*Service) *ObjectType {
	if len(services) == 0 {
		return nil
	}
	root := &ObjectType{Name: name}
	for _, s := range services {
		root.Fields = append(root.Fields, Field{
			Name:     s.FieldName(),
			Type:     FieldType{Kind: KindMessage, TypeName: s.TypeName()},
			Required: true,
		})
	}
	return root
}
