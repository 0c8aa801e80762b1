// Package inject binds named properties to providers mounted in a di.Dime.
//
// Declare creates a deferred injection point. It can be declared before any
// mount; the point resolves its token when the mount event fires and hands
// out one memoized value per owner:
//
//	var mailer = inject.MustDeclare[*Mailer](d, "mailer")
//	var clock = inject.MustDeclare[Clock](d, "clock", inject.WithToken(systemClock))
//
// Declaring on a mounted instance resolves at once and returns the error
// of a failed resolution from Declare.
//
// Into fills dime-tagged struct fields from an already mounted instance.
//
// If no mount happens within the instance's InjectTimeout, each pending
// point logs a single warning.
package inject
