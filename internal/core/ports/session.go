package ports

// SessionExpiredHandler is invoked by the gateway after any response comes
// back 401: both durable tokens have already been cleared when it runs. The
// original front-end redirected to the login page here; an embedding
// application decides what "go to login" means for it.
type SessionExpiredHandler func()
