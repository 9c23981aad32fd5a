// Package vitals is the backend core for a personal health-tracking
// application: user accounts, blood-pressure readings, images, and albums
// behind a token-authenticated REST API.
//
// Authentication boundary:
//   - TokenService mints and validates locally signed JWTs (HS256) carrying
//     the user id and email claims. The provider/clerk subpackage validates
//     tokens issued by an external identity provider against its published
//     JWKS. Both satisfy TokenValidator, so the request gate in
//     middleware/jwtware does not care who signed a token.
//   - Registrar and UserProvider implement the local registration/login
//     fallback on top of the bcrypt password hasher. Unknown-email and
//     wrong-password failures are indistinguishable to callers so the API
//     never confirms whether an account exists.
//
// Domain:
//   - Users carry a storage quota that is enforced transactionally when
//     images are uploaded. Blood-pressure readings are flagged server-side
//     when values fall outside clinical ranges.
package vitals
