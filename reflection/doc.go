// FILE: lixenwraith/confchain/reflection/doc.go

// Package reflection wraps the reflect package with helpers for walking a type's
// embedding chain and for resolving function arguments from rules.
//
// A Mirror lists fields and methods of a struct and every struct it embeds:
//
//	m := reflection.Reflect(&Server{})
//	port, ok := m.Field("Port")
//	start, ok := m.Method("Start", reflect.TypeFor[context.Context]())
//
// A Context works as a small dependency injector. Rules are checked in the order
// they were added and the first match supplies the argument:
//
//	ctx := reflection.NewContext().
//	    When(reflection.OfType[*zap.Logger](), logger).
//	    When(reflection.OfType[string](), "default")
//	svc, err := reflection.Create[*Service](ctx, NewService, NewServiceWithName)
package reflection
