package models

import (
	"time"

	"go.uber.org/multierr"

	"onetask-api/internal/docstore"
)

// UserProfile holds the per-user account document. One per user_id,
// enforced by a create-time existence check rather than a store
// constraint.
type UserProfile struct {
	BaseDocument
	DisplayName        string     `json:"display_name"`
	Email              string     `json:"email"`
	FirstName          *string    `json:"first_name,omitempty"`
	LastName           *string    `json:"last_name,omitempty"`
	Location           *string    `json:"location,omitempty"`
	Timezone           *string    `json:"timezone,omitempty"`
	Bio                *string    `json:"bio,omitempty"`
	AvatarURL          *string    `json:"avatar_url,omitempty"`
	PreferredGreeting  *string    `json:"preferred_greeting,omitempty"`
	CommunicationStyle *string    `json:"communication_style,omitempty"`
	DataConsent        bool       `json:"data_consent"`
	ProfileCompleted   bool       `json:"profile_completed"`
	LastActive         *time.Time `json:"last_active,omitempty"`
	OAuthProvider      *string    `json:"oauth_provider,omitempty"`
	OAuthID            *string    `json:"oauth_id,omitempty"`
}

func (p *UserProfile) Base() *BaseDocument { return &p.BaseDocument }
func (p *UserProfile) Type() DocumentType  { return DocumentTypeUserProfile }

func (p *UserProfile) ToRecord() docstore.Record {
	rec := baseRecord(&p.BaseDocument, DocumentTypeUserProfile)
	rec["display_name"] = p.DisplayName
	rec["email"] = p.Email
	rec["data_consent"] = p.DataConsent
	rec["profile_completed"] = p.ProfileCompleted
	if p.FirstName != nil {
		rec["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		rec["last_name"] = *p.LastName
	}
	if p.Location != nil {
		rec["location"] = *p.Location
	}
	if p.Timezone != nil {
		rec["timezone"] = *p.Timezone
	}
	if p.Bio != nil {
		rec["bio"] = *p.Bio
	}
	if p.AvatarURL != nil {
		rec["avatar_url"] = *p.AvatarURL
	}
	if p.PreferredGreeting != nil {
		rec["preferred_greeting"] = *p.PreferredGreeting
	}
	if p.CommunicationStyle != nil {
		rec["communication_style"] = *p.CommunicationStyle
	}
	setTimePtr(rec, "last_active", p.LastActive)
	if p.OAuthProvider != nil {
		rec["oauth_provider"] = *p.OAuthProvider
	}
	if p.OAuthID != nil {
		rec["oauth_id"] = *p.OAuthID
	}
	return rec
}

func UserProfileFromRecord(rec docstore.Record) (*UserProfile, error) {
	base, err := baseFromRecord(rec, DocumentTypeUserProfile)
	if err != nil {
		return nil, err
	}
	displayName, err := requireString(rec, "display_name")
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		BaseDocument:       base,
		DisplayName:        displayName,
		Email:              getString(rec, "email"),
		FirstName:          getStringPtr(rec, "first_name"),
		LastName:           getStringPtr(rec, "last_name"),
		Location:           getStringPtr(rec, "location"),
		Timezone:           getStringPtr(rec, "timezone"),
		Bio:                getStringPtr(rec, "bio"),
		AvatarURL:          getStringPtr(rec, "avatar_url"),
		PreferredGreeting:  getStringPtr(rec, "preferred_greeting"),
		CommunicationStyle: getStringPtr(rec, "communication_style"),
		DataConsent:        getBool(rec, "data_consent"),
		ProfileCompleted:   getBool(rec, "profile_completed"),
		LastActive:         getTimePtr(rec, "last_active"),
		OAuthProvider:      getStringPtr(rec, "oauth_provider"),
		OAuthID:            getStringPtr(rec, "oauth_id"),
	}, nil
}

type CreateUserProfileRequest struct {
	DisplayName        string  `json:"display_name"`
	Email              string  `json:"email"`
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Location           *string `json:"location"`
	Timezone           *string `json:"timezone"`
	Bio                *string `json:"bio"`
	AvatarURL          *string `json:"avatar_url"`
	PreferredGreeting  *string `json:"preferred_greeting"`
	CommunicationStyle *string `json:"communication_style"`
	DataConsent        bool    `json:"data_consent"`
	OAuthProvider      *string `json:"oauth_provider"`
	OAuthID            *string `json:"oauth_id"`
	UserID             string  `json:"user_id"`
}

func (r *CreateUserProfileRequest) Validate() error {
	var err error
	if r.DisplayName == "" {
		err = multierr.Append(err, requiredFieldError("display_name"))
	}
	if r.Email == "" {
		err = multierr.Append(err, requiredFieldError("email"))
	}
	if r.UserID == "" {
		err = multierr.Append(err, requiredFieldError("user_id"))
	}
	return err
}

func (r *CreateUserProfileRequest) ToProfile() *UserProfile {
	return &UserProfile{
		BaseDocument:       BaseDocument{UserID: r.UserID},
		DisplayName:        r.DisplayName,
		Email:              r.Email,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Location:           r.Location,
		Timezone:           r.Timezone,
		Bio:                r.Bio,
		AvatarURL:          r.AvatarURL,
		PreferredGreeting:  r.PreferredGreeting,
		CommunicationStyle: r.CommunicationStyle,
		DataConsent:        r.DataConsent,
		OAuthProvider:      r.OAuthProvider,
		OAuthID:            r.OAuthID,
	}
}

type UpdateUserProfileRequest struct {
	DisplayName        *string `json:"display_name"`
	Email              *string `json:"email"`
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Location           *string `json:"location"`
	Timezone           *string `json:"timezone"`
	Bio                *string `json:"bio"`
	AvatarURL          *string `json:"avatar_url"`
	PreferredGreeting  *string `json:"preferred_greeting"`
	CommunicationStyle *string `json:"communication_style"`
	DataConsent        *bool   `json:"data_consent"`
	ProfileCompleted   *bool   `json:"profile_completed"`
}

func (r *UpdateUserProfileRequest) Validate() error {
	var err error
	if r.DisplayName != nil && *r.DisplayName == "" {
		err = multierr.Append(err, invalidFieldError("display_name", ""))
	}
	if r.Email != nil && *r.Email == "" {
		err = multierr.Append(err, invalidFieldError("email", ""))
	}
	return err
}

func (r *UpdateUserProfileRequest) Updates() map[string]any {
	updates := map[string]any{}
	if r.DisplayName != nil {
		updates["display_name"] = *r.DisplayName
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.FirstName != nil {
		updates["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		updates["last_name"] = *r.LastName
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.Timezone != nil {
		updates["timezone"] = *r.Timezone
	}
	if r.Bio != nil {
		updates["bio"] = *r.Bio
	}
	if r.AvatarURL != nil {
		updates["avatar_url"] = *r.AvatarURL
	}
	if r.PreferredGreeting != nil {
		updates["preferred_greeting"] = *r.PreferredGreeting
	}
	if r.CommunicationStyle != nil {
		updates["communication_style"] = *r.CommunicationStyle
	}
	if r.DataConsent != nil {
		updates["data_consent"] = *r.DataConsent
	}
	if r.ProfileCompleted != nil {
		updates["profile_completed"] = *r.ProfileCompleted
	}
	return updates
}
