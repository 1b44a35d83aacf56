package observable

// Observable is the capability surface Base provides. Generated code pins
// annotated types to it with a compile-time assertion so a missing or
// shadowed embed fails the build instead of misbehaving at runtime.
type Observable interface {
	OnPropertyChanged(fn func(Change)) (unsubscribe func())
	RaisePropertyChanged(sender any, property string)
}

// ErrorNotifier is the validation surface ErrorsBase adds on top of
// Observable.
type ErrorNotifier interface {
	Observable
	SetErrors(property string, errs []error)
	Errors(property string) []error
	HasErrors() bool
}
