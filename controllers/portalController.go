package controllers

import (
	"MediClaim/handlers"
	"MediClaim/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupPortalRoutes registers the claims-portal resource routes. Everything
// except the signed document content routes requires a session; per-record
// authorization happens in the service layer.
func SetupPortalRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	appointmentHandler *handlers.AppointmentHandler,
	reportHandler *handlers.ReportHandler,
	claimHandler *handlers.ClaimHandler,
	paymentHandler *handlers.PaymentHandler,
	documentHandler *handlers.DocumentHandler,
) {
	// Signed URLs carry their own authorization.
	router.GET("/documents/content/:key", documentHandler.ServeContent)
	router.PUT("/documents/content/:key", documentHandler.ReceiveContent)

	// User creation is the one resource operation open to anonymous callers.
	router.POST("/users", authHandler.Register)

	portal := router.Group("/").Use(middlewares.TokenAuthMiddleware())
	{
		portal.GET("/users", userHandler.ListUsers)
		portal.GET("/users/:id", userHandler.GetUser)

		portal.POST("/appointments", appointmentHandler.CreateAppointment)
		portal.GET("/appointments", appointmentHandler.ListAppointments)
		portal.GET("/appointments/:id", appointmentHandler.GetAppointment)
		portal.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)
		portal.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)

		portal.POST("/patient-reports", reportHandler.CreateReport)
		portal.GET("/patient-reports", reportHandler.ListReports)
		portal.GET("/patient-reports/:id", reportHandler.GetReport)
		portal.PUT("/patient-reports/:id", reportHandler.UpdateReport)
		portal.DELETE("/patient-reports/:id", reportHandler.DeleteReport)

		portal.POST("/claims", claimHandler.CreateClaim)
		portal.GET("/claims", claimHandler.ListClaims)
		portal.GET("/claims/:id", claimHandler.GetClaim)
		portal.PUT("/claims/:id", claimHandler.UpdateClaim)
		portal.PATCH("/claims/:id", claimHandler.TransitionClaim)
		portal.DELETE("/claims/:id", claimHandler.DeleteClaim)
		portal.POST("/claims/:id/attach-report", claimHandler.AttachReport)
		portal.POST("/claims/:id/detach-report", claimHandler.DetachReport)

		portal.POST("/payments", paymentHandler.CreatePayment)
		portal.GET("/payments", paymentHandler.ListPayments)
		portal.GET("/payments/:id", paymentHandler.GetPayment)
		portal.PATCH("/payments/:id", paymentHandler.UpdatePayment)

		portal.POST("/documents", documentHandler.UploadDocument)
		portal.GET("/documents", documentHandler.ListDocuments)
		portal.POST("/documents/upload-url", documentHandler.CreateUploadURL)
		portal.GET("/documents/:id", documentHandler.GetDocument)
		portal.GET("/documents/:id/view", documentHandler.ViewDocument)
	}
}
