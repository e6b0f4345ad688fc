package services

// Services defined in this package:
// - AuthService: Handles authentication, token issuance and refresh
// - UserService: Handles user profiles and role management
// - OrganizationService: Handles organizations and their verification
// - TaskService: Handles volunteer tasks and their lifecycle
// - RegistrationService: Handles the task registration lifecycle
// - NotificationService: Handles notification persistence and push delivery
// - CompletionService: Periodically completes expired tasks and their registrations
