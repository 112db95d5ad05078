// Package branding centralizes product naming used across services.
package branding

// AppName is the user-facing product name.
const AppName = "Troth"

// Tagline is the short product description used on public pages.
const Tagline = "Declare a commitment, put a confidence on it, and find out how well you know yourself."
