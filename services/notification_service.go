package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"reims-http-service/config"
	"reims-http-service/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// InterfaceNotificationService 定义预警通知服务接口
type InterfaceNotificationService interface {
	Connect() error
	Disconnect()
	PublishDecisionEvent(alert *models.Alert, decision *models.Decision)
	PublishAlertCreated(alert *models.Alert) error
	PublishSystemMessage(messageType string, message map[string]interface{}) error
}

// 主题常量
const (
	// 新预警通知主题
	TopicAlertCreated = "reims/alerts/created"

	// 决策结果通知主题
	TopicAlertDecision = "reims/alerts/decision"

	// 系统消息主题
	TopicSystemMessage = "reims/system"
)

// 消息结构体定义
type (
	// AlertEventMessage 预警事件消息
	AlertEventMessage struct {
		AlertID    uint    `json:"alert_id"`
		Severity   string  `json:"severity"`
		PropertyID uint    `json:"property_id"`
		Value      float64 `json:"value"`
		Threshold  float64 `json:"threshold"`
		Timestamp  int64   `json:"timestamp"`
	}

	// DecisionEventMessage 决策结果消息
	DecisionEventMessage struct {
		AlertID   uint   `json:"alert_id"`
		Status    string `json:"status"` // approved, rejected
		UserID    uint   `json:"user_id"`
		Reason    string `json:"reason,omitempty"`
		Timestamp int64  `json:"timestamp"`
	}

	// SystemMessage 系统消息
	SystemMessage struct {
		Type      string      `json:"type"`
		Level     string      `json:"level"` // info/warning/error
		Message   string      `json:"message"`
		Data      interface{} `json:"data,omitempty"`
		Timestamp int64       `json:"timestamp"`
	}
)

// NotificationService 通过MQTT向仪表盘订阅方推送预警与决策事件
type NotificationService struct {
	Config         *config.Config
	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 保护MQTT消息发布
}

// NewNotificationService 创建新的通知服务
func NewNotificationService(cfg *config.Config) InterfaceNotificationService {
	service := &NotificationService{
		Config: cfg,
	}
	service.setupMQTTClient()
	return service
}

func (s *NotificationService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("%s-%s-%d", s.Config.MQTTClientID, uuid.New().String()[:8], time.Now().UnixNano()))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)
	opts.SetOrderMatters(true)

	// 添加用户名和密码
	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	// 添加TLS配置，支持SSL连接
	if strings.HasPrefix(s.Config.MQTTBrokerURL, "ssl://") || strings.HasPrefix(s.Config.MQTTBrokerURL, "tls://") || s.Config.MQTTSSLEnabled {
		log.Println("[MQTT] 使用TLS连接")
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true, // 默认跳过验证，如有CA证书则使用
		}

		if s.Config.MQTTCACertPath != "" {
			log.Printf("[MQTT] 使用CA证书: %s", s.Config.MQTTCACertPath)
		}

		opts.SetTLSConfig(tlsConfig)
	}

	// 设置连接丢失回调
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("[MQTT] 连接丢失: %v", err)
		s.connectedMutex.Lock()
		s.IsConnected = false
		s.connectedMutex.Unlock()
	})

	// 设置连接建立回调
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Println("[MQTT] 成功连接到", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.IsConnected = true
		s.connectedMutex.Unlock()
	})

	// 设置重连回调
	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		log.Println("[MQTT] 正在尝试重连...")
	})

	// 创建客户端
	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器，带有重试机制
func (s *NotificationService) Connect() error {
	log.Printf("[MQTT] 正在连接到 %s...", s.Config.MQTTBrokerURL)

	// 加锁，确保同一时间只有一个连接尝试
	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()

	// 如果已连接，直接返回
	s.connectedMutex.RLock()
	isConnected := s.IsConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()

	if isConnected {
		return nil
	}

	// 添加最大重试次数和指数退避策略
	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		token := s.Client.Connect()
		if token.WaitTimeout(5*time.Second) && token.Error() == nil {
			s.connectedMutex.Lock()
			s.IsConnected = true
			s.connectedMutex.Unlock()
			log.Printf("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
			return nil
		}

		err = token.Error()
		backoffTime := time.Duration(1<<uint(i)) * time.Second // 指数退避: 1s, 2s, 4s, 8s, 16s
		log.Printf("[MQTT] 连接尝试 %d/%d 失败: %v, 将在 %v 后重试", i+1, maxRetries, err, backoffTime)
		time.Sleep(backoffTime)
	}

	return fmt.Errorf("[MQTT] 连接失败，已尝试 %d 次: %v", maxRetries, err)
}

// Disconnect 断开与MQTT服务器的连接
func (s *NotificationService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// PublishDecisionEvent 推送决策结果。决策已落库，推送失败只记录日志
func (s *NotificationService) PublishDecisionEvent(alert *models.Alert, decision *models.Decision) {
	msg := DecisionEventMessage{
		AlertID:   alert.ID,
		Status:    alert.Status,
		UserID:    decision.UserID,
		Reason:    decision.Reason,
		Timestamp: time.Now().UnixMilli(),
	}

	if err := s.publishMessage(TopicAlertDecision, msg); err != nil {
		log.Printf("[MQTT] 推送决策事件失败 alert=%d: %v", alert.ID, err)
	}
}

// PublishAlertCreated 推送新预警通知
func (s *NotificationService) PublishAlertCreated(alert *models.Alert) error {
	msg := AlertEventMessage{
		AlertID:    alert.ID,
		Severity:   alert.Severity,
		PropertyID: alert.PropertyID,
		Value:      alert.Value,
		Threshold:  alert.Threshold,
		Timestamp:  time.Now().UnixMilli(),
	}
	return s.publishMessage(TopicAlertCreated, msg)
}

// PublishSystemMessage 推送系统消息
func (s *NotificationService) PublishSystemMessage(messageType string, message map[string]interface{}) error {
	msg := SystemMessage{
		Type:      messageType,
		Level:     "info",
		Message:   fmt.Sprintf("%v", message["message"]),
		Data:      message,
		Timestamp: time.Now().UnixMilli(),
	}
	return s.publishMessage(TopicSystemMessage, msg)
}

func (s *NotificationService) publishMessage(topic string, payload interface{}) error {
	// 加锁保护发布过程，避免并发发布冲突
	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()

	// 检查连接状态
	s.connectedMutex.RLock()
	isConnected := s.IsConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()

	if !isConnected {
		return fmt.Errorf("MQTT客户端未连接")
	}

	// 序列化消息
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	// 发布消息，使用QoS 1确保消息至少被传递一次
	qos := byte(1)
	retained := false // 非持久消息

	// 创建发布令牌并等待完成
	token := s.Client.Publish(topic, qos, retained, jsonData)

	// 设置超时时间，避免无限等待
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("发布消息超时")
	}

	if token.Error() != nil {
		return fmt.Errorf("发布消息失败: %v", token.Error())
	}

	log.Printf("[MQTT] 已发布%T类型消息到主题: %s", payload, topic)
	return nil
}
