/*
Package authsdk provides a client SDK for the Qure authentication API.

# Overview

The package is organized around two types:

  - SDKClient: public operations (registration, login, password reset,
    health) and the entry point for creating a Session
  - Session: operations that need the caller's bearer token

Create an SDKClient and log in to obtain a Session:

	client := authsdk.NewSDKClient("https://api.qure.example")

	_, err := client.Register(ctx, authsdk.RegisterRequest{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@example.com",
		Password:     "Sup3r!secret",
		Role:         "STAFF",
		HospitalName: "St Vincent's",
	})

	session, err := client.Login(ctx, "grace@example.com", "Sup3r!secret", "")

	me, err := session.Me(ctx)

Sessions carry a single 24 hour token. There is no refresh: when the
server answers 401 the caller logs in again.

# Phone login

The login identifier may be an email address or a phone number:

	session, err := client.Login(ctx, "0412345678", password, "PATIENT")

# Error Handling

Non-2xx responses are returned as *APIError carrying the status code and
the server's message:

	_, err := client.Login(ctx, email, "wrong", "")
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		fmt.Println(apiErr.Message)
	}

# Thread Safety

SDKClient and Session are safe for concurrent use.
*/
package authsdk
