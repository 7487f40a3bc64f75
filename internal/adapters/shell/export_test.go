package shell

// ResolveEnvironment exposes resolveEnvironment for tests.
var ResolveEnvironment = resolveEnvironment

// LookPath exposes lookPath for tests.
var LookPath = lookPath
