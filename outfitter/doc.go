/*
Package outfitter initializes and manages a cairn app with sane defaults.

# Outfitter

The main entrypoint to package outfitter is the [Outfitter] type.
An [Outfitter] ought to be constructed with [New].

[*Outfitter.Guide] begins a cairn app's web server.
By default, [*Outfitter.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the cairn web server.

Upon calling [*Outfitter.Guide], the handler mounted by [WithHandler] is active,
wrapped in the default middleware stack or the one supplied to [WithMiddlewares].
Stop that web server with [*Outfitter.Shutdown]
or send a signal [*Outfitter.Guide] listens for.

# Configuration

A developer configures a cairn app through environment variables
and by passing [OutfitterOption] functions to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_TITLE: a short title for the application, shaping the session cookie name
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address end users can reach out to; default: hello@xyplanningnetwork.com
  - ENVIRONMENT: the environment the application is running in; cf. [cairn.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINT_MODE: whether to respond to every request with 503 Service Unavailable; default: false
  - PORT: the port the application should listen on; default: :3000
  - SENTRY_DSN: the DSN for shipping error and fatal logs to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
*/
package outfitter
