package core

// Version reported by the version command.
const Version = "0.4.0"
